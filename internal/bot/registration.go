package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/service"
)

// actor resolves a Telegram user. ok is false for unknown users.
func (b *Bot) actor(ctx context.Context, tgID int64) (service.Actor, bool) {
	u, err := b.svc.Users.ByTelegramID(ctx, tgID)
	if err != nil {
		b.log.Error("user lookup failed", "tg_id", tgID, "err", err)
		return service.Actor{}, false
	}
	if u == nil {
		return service.Actor{}, false
	}
	return service.Actor{Name: u.Username, Role: u.Role}, true
}

// start registers the configured admin chat owner as admin; everybody else
// has to be added by an admin.
func (b *Bot) start(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if a, ok := b.actor(ctx, msg.From.ID); ok {
		b.reply(chatID, fmt.Sprintf("Hi %s, you are signed in as %s.\n\n%s", a.Name, a.Role, helpText))
		return
	}

	if b.adminChat != 0 && msg.From.ID == b.adminChat {
		name := strings.TrimSpace(msg.From.UserName)
		if name == "" {
			name = fmt.Sprintf("tg%d", msg.From.ID)
		}
		_, err := b.svc.Users.Upsert(ctx, service.System, users.User{
			Username:   name,
			FullName:   strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName),
			TelegramID: msg.From.ID,
			Role:       users.RoleAdmin,
		})
		if err != nil {
			b.log.Error("admin registration failed", "err", err)
			b.reply(chatID, "Could not save your profile, try again later.")
			return
		}
		b.reply(chatID, "Hi admin! You will receive alerts here.\n\n"+helpText)
		return
	}

	b.reply(chatID, fmt.Sprintf("You are not registered yet. Ask an administrator to add Telegram id %d.", msg.From.ID))
}
