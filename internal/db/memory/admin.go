package memory

import (
	"context"
	"time"

	"serotonyl.ru/dogspots/internal/common"
	"serotonyl.ru/dogspots/internal/features/admin"
)

// attemptRetention — сколько хранить попытки входа после окна блокировки.
const attemptRetention = time.Hour

// AdminRepo — сессии и попытки входа в памяти.
type AdminRepo struct{ s *Store }

// CreateSession сохраняет активную сессию.
func (r *AdminRepo) CreateSession(_ context.Context, sess *admin.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	stored := *sess
	stored.ID = r.s.nextID("admin_sessions")
	stored.AuthenticatedAt = now
	stored.LastActivity = now
	stored.IsActive = true
	r.s.sessions[stored.SessionToken] = &stored
	return nil
}

// GetSessionByToken возвращает копию сессии.
func (r *AdminRepo) GetSessionByToken(_ context.Context, token string) (*admin.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, common.ErrSessionExpired
	}
	out := *sess
	return &out, nil
}

// DeactivateSessions закрывает все сессии пользователя.
func (r *AdminRepo) DeactivateSessions(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sess := range r.s.sessions {
		if sess.UserID == userID {
			sess.IsActive = false
		}
	}
	return nil
}

// UpdateActivity обновляет время последней активности.
func (r *AdminRepo) UpdateActivity(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[token]; ok && sess.IsActive {
		sess.LastActivity = r.s.now()
	}
	return nil
}

// LogAttempt записывает попытку входа.
func (r *AdminRepo) LogAttempt(_ context.Context, userID int64, success bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.attempts = append(r.s.attempts, &admin.LoginAttempt{
		ID:          r.s.nextID("admin_login_attempts"),
		UserID:      userID,
		AttemptTime: r.s.now(),
		Success:     success,
	})
	return nil
}

// CountRecentFailures считает неудачные попытки начиная с since.
func (r *AdminRepo) CountRecentFailures(_ context.Context, userID int64, since time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.attempts {
		if a.UserID == userID && !a.Success && !a.AttemptTime.Before(since) {
			n++
		}
	}
	return n, nil
}

// DeleteExpired удаляет истёкшие и закрытые сессии и старые попытки входа.
func (r *AdminRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var deleted int64
	for token, sess := range r.s.sessions {
		if sess.ExpiresAt.Before(before) || !sess.IsActive {
			delete(r.s.sessions, token)
			deleted++
		}
	}
	cutoff := before.Add(-attemptRetention)
	kept := r.s.attempts[:0]
	for _, a := range r.s.attempts {
		if a.AttemptTime.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.s.attempts = kept
	return deleted, nil
}
