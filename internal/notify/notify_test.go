package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/dogspots/internal/config"
)

type failingNotifier struct{ calls int }

func (f *failingNotifier) Notify(context.Context, string) error {
	f.calls++
	return errors.New("network down")
}

func TestNew_WithoutTokenUsesLog(t *testing.T) {
	n, err := New(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, Log{}, n)
	assert.NoError(t, n.Notify(context.Background(), "hello"))
}

func TestNew_InvalidTokenFails(t *testing.T) {
	_, err := New(&config.Config{TelegramBotToken: "not-a-token", TelegramAdminChatID: 1})
	assert.Error(t, err)
}

func TestSend_SwallowsErrors(t *testing.T) {
	f := &failingNotifier{}
	assert.NotPanics(t, func() { Send(context.Background(), f, "text") })
	assert.Equal(t, 1, f.calls)
	assert.NotPanics(t, func() { Send(context.Background(), nil, "text") })
}
