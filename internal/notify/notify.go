// Package notify отправляет служебные уведомления администраторам.
// Если задан токен бота — в Telegram-чат админов, иначе только в лог.
package notify

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/dogspots/internal/config"
)

// Notifier — получатель уведомлений.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Telegram шлёт уведомления в чат админов.
type Telegram struct {
	bot    *telego.Bot
	chatID int64
}

// NewTelegram создаёт бота. Сеть не трогается: токен проверяется только по формату.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram-бота: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Notify отправляет текст в чат админов.
func (t *Telegram) Notify(ctx context.Context, text string) error {
	if _, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(t.chatID), text)); err != nil {
		return fmt.Errorf("ошибка отправки уведомления в Telegram: %w", err)
	}
	return nil
}

// Log пишет уведомления в лог.
type Log struct{}

// Notify пишет текст в лог на уровне info.
func (Log) Notify(_ context.Context, text string) error {
	log.WithField("notification", text).Info("Уведомление админам")
	return nil
}

// New выбирает реализацию по конфигурации.
func New(cfg *config.Config) (Notifier, error) {
	if cfg.TelegramBotToken == "" {
		log.Info("TELEGRAM_BOT_TOKEN не задан — уведомления пишутся в лог")
		return Log{}, nil
	}
	tg, err := NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
	if err != nil {
		return nil, err
	}
	log.WithField("chat_id", cfg.TelegramAdminChatID).Info("Уведомления админам идут в Telegram")
	return tg, nil
}

// Send отправляет уведомление и только логирует ошибку:
// сбой доставки не должен ломать запрос, который его вызвал.
func Send(ctx context.Context, n Notifier, text string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, text); err != nil {
		log.WithError(err).Warn("Не удалось отправить уведомление")
	}
}
