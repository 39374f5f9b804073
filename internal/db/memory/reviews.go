package memory

import (
	"context"
	"fmt"
	"sort"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/reviews"
)

// ReviewRepo — отзывы в памяти.
type ReviewRepo struct{ s *Store }

// Create сохраняет отзыв; одна пара пользователь ↔ локация — один отзыв.
func (r *ReviewRepo) Create(_ context.Context, rv *reviews.Review) (*reviews.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[rv.LocationID]; !ok {
		return nil, fmt.Errorf("отзыв (user=%d, location=%d): %w", rv.UserID, rv.LocationID, common.ErrLocationNotFound)
	}
	for _, existing := range r.s.reviews {
		if existing.UserID == rv.UserID && existing.LocationID == rv.LocationID {
			return nil, common.ErrReviewExists
		}
	}
	stored := *rv
	stored.ID = r.s.nextID("reviews")
	stored.PhotoURL = clonePtr(rv.PhotoURL)
	stored.CreatedAt = r.s.now()
	r.s.reviews[stored.ID] = &stored
	return cloneReview(&stored), nil
}

// GetByID возвращает копию отзыва.
func (r *ReviewRepo) GetByID(_ context.Context, id int64) (*reviews.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, common.ErrReviewNotFound
	}
	return cloneReview(rv), nil
}

// GetForUserLocation возвращает отзыв пользователя о локации.
func (r *ReviewRepo) GetForUserLocation(_ context.Context, userID, locationID int64) (*reviews.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.UserID == userID && rv.LocationID == locationID {
			return cloneReview(rv), nil
		}
	}
	return nil, common.ErrReviewNotFound
}

// ListByLocation возвращает отзывы о локации, новые первыми.
func (r *ReviewRepo) ListByLocation(_ context.Context, locationID int64) ([]*reviews.Review, error) {
	return r.list(func(rv *reviews.Review) bool { return rv.LocationID == locationID }), nil
}

// ListByUser возвращает отзывы пользователя, новые первыми.
func (r *ReviewRepo) ListByUser(_ context.Context, userID int64) ([]*reviews.Review, error) {
	return r.list(func(rv *reviews.Review) bool { return rv.UserID == userID }), nil
}

// Update меняет оценку, текст и фото.
func (r *ReviewRepo) Update(_ context.Context, id int64, req *reviews.UpdateRequest) (*reviews.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, common.ErrReviewNotFound
	}
	rv.Rating, rv.Content, rv.PhotoURL = req.Rating, req.Content, clonePtr(req.PhotoURL)
	return cloneReview(rv), nil
}

// Delete удаляет отзыв.
func (r *ReviewRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return fmt.Errorf("отзыв %d: %w", id, common.ErrReviewNotFound)
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *ReviewRepo) list(match func(*reviews.Review) bool) []*reviews.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*reviews.Review{}
	for _, rv := range r.s.reviews {
		if match(rv) {
			out = append(out, cloneReview(rv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func cloneReview(rv *reviews.Review) *reviews.Review {
	c := *rv
	c.PhotoURL = clonePtr(rv.PhotoURL)
	return &c
}
