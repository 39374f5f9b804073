// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасная очистка сессий админов
// и ежедневная сводка по предложениям, ждущим проверки.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/notify"
)

// Расписания задач
const (
	cleanupSpec = "0 * * * *" // Каждый час
	digestSpec  = "0 9 * * *" // Ежедневно в 09:00
)

// SessionCleaner удаляет истёкшие сессии админов.
type SessionCleaner interface {
	Cleanup(ctx context.Context) (int64, error)
}

// PendingCounter считает предложения в очереди на проверку.
type PendingCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	loc      *time.Location
	sessions SessionCleaner
	pending  PendingCounter
	notifier notify.Notifier
}

// NewScheduler создаёт планировщик задач в часовом поясе loc.
func NewScheduler(loc *time.Location, sessions SessionCleaner, pending PendingCounter, notifier notify.Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		loc:      loc,
		sessions: sessions,
		pending:  pending,
		notifier: notifier,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(cleanupSpec, func() { s.cleanupSessions(ctx) }); err != nil {
		return fmt.Errorf("ошибка регистрации очистки сессий: %w", err)
	}
	if _, err := s.cron.AddFunc(digestSpec, func() { s.pendingDigest(ctx) }); err != nil {
		return fmt.Errorf("ошибка регистрации сводки: %w", err)
	}

	s.cron.Start()
	log.WithField("timezone", s.loc.String()).Info("Планировщик задач запущен")
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

func (s *Scheduler) cleanupSessions(ctx context.Context) {
	log.Debug("[CRON] Очистка сессий админов")
	n, err := s.sessions.Cleanup(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка очистки сессий")
		return
	}
	if n > 0 {
		log.WithField("deleted", n).Info("[CRON] Удалены истёкшие сессии и попытки входа")
	}
}

func (s *Scheduler) pendingDigest(ctx context.Context) {
	log.Info("[CRON] Сводка по предложениям")
	n, err := s.pending.CountPending(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка подсчёта предложений")
		return
	}
	if n == 0 {
		return
	}
	notify.Send(ctx, s.notifier, fmt.Sprintf("🗂 Ждут проверки: %d %s", n, pluralSuggestions(n)))
}

func pluralSuggestions(n int) string {
	if n == 1 {
		return "suggestion"
	}
	return "suggestions"
}
