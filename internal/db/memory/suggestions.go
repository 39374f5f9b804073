package memory

import (
	"context"
	"fmt"
	"sort"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/suggestions"
	"serotonyl.ru/dogspots/internal/features/users"
)

// SuggestionRepo — предложения в памяти.
type SuggestionRepo struct{ s *Store }

// Create сохраняет предложение со статусом pending.
func (r *SuggestionRepo) Create(_ context.Context, sg *suggestions.Suggestion) (*suggestions.Suggestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[sg.UserID]; !ok {
		return nil, fmt.Errorf("автор %d: %w", sg.UserID, common.ErrUserNotFound)
	}
	stored := cloneSuggestion(sg)
	stored.ID = r.s.nextID("location_suggestions")
	stored.Status = suggestions.StatusPending
	stored.LocationID, stored.ReviewedBy, stored.ReviewedAt = nil, nil, nil
	stored.CreatedAt = r.s.now()
	r.s.suggestions[stored.ID] = stored
	return cloneSuggestion(stored), nil
}

// GetByID возвращает копию предложения.
func (r *SuggestionRepo) GetByID(_ context.Context, id int64) (*suggestions.Suggestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sg, err := r.s.suggestion(id)
	if err != nil {
		return nil, err
	}
	return cloneSuggestion(sg), nil
}

// List возвращает предложения под фильтр, новые первыми.
func (r *SuggestionRepo) List(_ context.Context, f suggestions.ListFilter) ([]*suggestions.Suggestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*suggestions.Suggestion{}
	for _, sg := range r.s.suggestions {
		if f.Match(sg) {
			out = append(out, cloneSuggestion(sg))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Update меняет описательные поля.
func (r *SuggestionRepo) Update(_ context.Context, id int64, e *suggestions.Edit) (*suggestions.Suggestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sg, err := r.s.suggestion(id)
	if err != nil {
		return nil, err
	}
	sg.Name, sg.Description, sg.Category, sg.Address = e.Name, e.Description, e.Category, e.Address
	sg.Latitude, sg.Longitude = clonePtr(e.Latitude), clonePtr(e.Longitude)
	sg.Features, sg.PhotoURL = e.Features, clonePtr(e.PhotoURL)
	return cloneSuggestion(sg), nil
}

// Transition меняет статус, публикует локацию и начисляет баллы под одной блокировкой.
// Если начисление невозможно, ничего не меняется.
func (r *SuggestionRepo) Transition(_ context.Context, id int64, status suggestions.Status, reviewerID int64, p *suggestions.Promoter) (*suggestions.Transition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sg, err := r.s.suggestion(id)
	if err != nil {
		return nil, err
	}
	t := &suggestions.Transition{Previous: sg.Status}

	if status == suggestions.StatusApproved && !sg.Promoted() {
		if _, ok := r.s.users[sg.UserID]; !ok {
			return nil, fmt.Errorf("начисление пользователю %d: %w", sg.UserID, common.ErrUserNotFound)
		}
		loc := r.s.insertLocation(p.Location(sg))
		if _, err := r.s.creditPoints(sg.UserID, p.Reward, users.TxTypeSuggestionApproved, p.RewardDescription(sg)); err != nil {
			return nil, err
		}
		sg.LocationID = ptr(loc.ID)
		t.Location = loc
		t.Reward = p.Reward
	}

	sg.Status = status
	sg.ReviewedBy = ptr(reviewerID)
	sg.ReviewedAt = ptr(r.s.now())
	t.Suggestion = cloneSuggestion(sg)
	return t, nil
}

// suggestion вызывать под s.mu.
func (s *Store) suggestion(id int64) (*suggestions.Suggestion, error) {
	sg, ok := s.suggestions[id]
	if !ok {
		return nil, fmt.Errorf("предложение %d: %w", id, common.ErrSuggestionNotFound)
	}
	return sg, nil
}

func cloneSuggestion(sg *suggestions.Suggestion) *suggestions.Suggestion {
	c := *sg
	c.Latitude = clonePtr(sg.Latitude)
	c.Longitude = clonePtr(sg.Longitude)
	c.PhotoURL = clonePtr(sg.PhotoURL)
	c.LocationID = clonePtr(sg.LocationID)
	c.ReviewedBy = clonePtr(sg.ReviewedBy)
	c.ReviewedAt = clonePtr(sg.ReviewedAt)
	return &c
}
