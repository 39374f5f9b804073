package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/users"
)

// UserRepo — пользователи и журнал баллов в памяти.
type UserRepo struct{ s *Store }

// Create сохраняет пользователя; username уникален без учёта регистра.
func (r *UserRepo) Create(_ context.Context, u *users.User) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return nil, common.ErrUsernameTaken
		}
	}
	stored := &users.User{
		ID:           r.s.nextID("users"),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    r.s.now(),
	}
	r.s.users[stored.ID] = stored
	out := *stored
	return &out, nil
}

// GetByID возвращает копию пользователя.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("пользователь %d: %w", id, common.ErrUserNotFound)
	}
	out := *u
	return &out, nil
}

// GetByUsername ищет пользователя без учёта регистра.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			out := *u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("пользователь %q: %w", username, common.ErrUserNotFound)
}

// AddPoints начисляет баллы и пишет запись в журнал под одной блокировкой.
func (r *UserRepo) AddPoints(_ context.Context, userID, amount int64, txType, description string) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.creditPoints(userID, amount, txType, description)
}

// creditPoints вызывать под s.mu.
func (s *Store) creditPoints(userID, amount int64, txType, description string) (*users.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("начисление пользователю %d: %w", userID, common.ErrUserNotFound)
	}
	u.PawPoints += amount
	s.transactions = append(s.transactions, &users.PointTransaction{
		ID:          s.nextID("point_transactions"),
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		CreatedAt:   s.now(),
	})
	out := *u
	return &out, nil
}

// GetTransactions возвращает последние limit записей, новые первыми.
func (r *UserRepo) GetTransactions(_ context.Context, userID int64, limit int) ([]*users.PointTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*users.PointTransaction{}
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
