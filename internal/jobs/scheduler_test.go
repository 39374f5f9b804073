package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	calls int
	err   error
}

func (f *fakeCleaner) Cleanup(context.Context) (int64, error) {
	f.calls++
	return 2, f.err
}

type fakeCounter struct {
	n   int
	err error
}

func (f *fakeCounter) CountPending(context.Context) (int, error) { return f.n, f.err }

type fakeNotifier struct{ texts []string }

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return nil
}

func TestPendingDigest(t *testing.T) {
	ctx := context.Background()

	n := &fakeNotifier{}
	s := NewScheduler(time.UTC, &fakeCleaner{}, &fakeCounter{n: 3}, n)
	s.pendingDigest(ctx)
	require.Len(t, n.texts, 1)
	assert.Contains(t, n.texts[0], "3 suggestions")

	n = &fakeNotifier{}
	s = NewScheduler(time.UTC, &fakeCleaner{}, &fakeCounter{n: 0}, n)
	s.pendingDigest(ctx)
	assert.Empty(t, n.texts, "пустая очередь — без уведомления")

	n = &fakeNotifier{}
	s = NewScheduler(time.UTC, &fakeCleaner{}, &fakeCounter{err: errors.New("db down")}, n)
	s.pendingDigest(ctx)
	assert.Empty(t, n.texts)
}

func TestCleanupSessions(t *testing.T) {
	c := &fakeCleaner{err: errors.New("db down")}
	s := NewScheduler(time.UTC, c, &fakeCounter{}, &fakeNotifier{})
	assert.NotPanics(t, func() { s.cleanupSessions(context.Background()) })
	assert.Equal(t, 1, c.calls)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(time.UTC, &fakeCleaner{}, &fakeCounter{}, &fakeNotifier{})
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}

func TestPluralSuggestions(t *testing.T) {
	assert.Equal(t, "suggestion", pluralSuggestions(1))
	assert.Equal(t, "suggestions", pluralSuggestions(0))
	assert.Equal(t, "suggestions", pluralSuggestions(7))
}
