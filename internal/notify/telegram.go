package notify

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI used for delivery.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Recipients lists additional chat ids, e.g. managers linked to Telegram.
type Recipients func(ctx context.Context) ([]int64, error)

type Telegram struct {
	api        Sender
	adminChat  int64
	recipients Recipients
}

func NewTelegram(api Sender, adminChat int64, recipients Recipients) *Telegram {
	return &Telegram{api: api, adminChat: adminChat, recipients: recipients}
}

// Notify sends to the admin chat and every recipient, never twice to the
// same chat.
func (t *Telegram) Notify(ctx context.Context, e Event) error {
	chats := []int64{t.adminChat}
	if t.recipients != nil {
		ids, err := t.recipients(ctx)
		if err != nil {
			return fmt.Errorf("telegram recipients: %w", err)
		}
		chats = append(chats, ids...)
	}

	text := e.Text()
	sent := map[int64]struct{}{}
	var errs []error
	for _, id := range chats {
		if id == 0 {
			continue
		}
		if _, ok := sent[id]; ok {
			continue
		}
		sent[id] = struct{}{}
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if _, err := t.api.Send(tgbotapi.NewMessage(id, text)); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
