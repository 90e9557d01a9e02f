package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

const helpText = `Commands:
/alerts - pending alerts
/check - run the alert rules now
/ack <id> - acknowledge an alert
/stock <code> - stock of a material
/dashboard [7d|30d|90d|1y|all] - summary`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmd := msg.Command()

	switch cmd {
	case "start":
		b.start(ctx, msg)
		return
	case "help":
		b.reply(chatID, helpText)
		return
	}

	actor, ok := b.actor(ctx, msg.From.ID)
	if !ok {
		b.reply(chatID, "You are not registered. Send /start.")
		return
	}
	args := strings.TrimSpace(msg.CommandArguments())

	switch cmd {
	case "alerts":
		list, err := b.svc.Alerts.List(ctx, true)
		if err != nil {
			b.reply(chatID, errText(err))
			return
		}
		m := tgbotapi.NewMessage(chatID, formatAlerts(list))
		if len(list) > 0 && users.CanAcknowledgeAlerts(actor.Role) {
			m.ReplyMarkup = ackKeyboard(list)
		}
		b.send(m)

	case "check":
		if !users.CanManageInventory(actor.Role) {
			b.reply(chatID, errText(apperrors.ErrForbidden))
			return
		}
		res, err := b.svc.Alerts.Check(ctx)
		text := fmt.Sprintf("Alert check: %d created, %d already pending", len(res.Created), len(res.Skipped))
		if err != nil {
			text += fmt.Sprintf(", %d not saved (%s)", len(res.Failed), errText(err))
		}
		b.reply(chatID, text)

	case "ack":
		if args == "" {
			b.reply(chatID, "Usage: /ack <alert id>")
			return
		}
		if err := b.svc.Alerts.Acknowledge(ctx, actor, args); err != nil {
			b.reply(chatID, errText(err))
			return
		}
		b.reply(chatID, "Alert acknowledged.")

	case "stock":
		if args == "" {
			b.reply(chatID, "Usage: /stock <material code>")
			return
		}
		m, err := b.svc.Inventory.GetMaterial(ctx, args)
		if err != nil {
			b.reply(chatID, errText(err))
			return
		}
		b.reply(chatID, formatStock(*m))

	case "dashboard":
		period := args
		if period == "" {
			period = "7d"
		}
		sum, err := b.svc.Analytics.Dashboard(ctx, actor, period)
		if err != nil {
			b.reply(chatID, errText(err))
			return
		}
		m := tgbotapi.NewMessage(chatID, formatSummary(period, sum))
		m.ReplyMarkup = periodKeyboard()
		b.send(m)

	default:
		b.reply(chatID, "Unknown command. Send /help")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	actor, ok := b.actor(ctx, cb.From.ID)
	if !ok {
		b.answerCallback(cb, "You are not registered.", true)
		return
	}

	kind, arg, _ := strings.Cut(cb.Data, ":")
	switch kind {
	case "ack":
		if err := b.svc.Alerts.Acknowledge(ctx, actor, arg); err != nil {
			b.answerCallback(cb, errText(err), true)
			return
		}
		b.answerCallback(cb, "Acknowledged", false)
		list, err := b.svc.Alerts.List(ctx, true)
		if err != nil {
			return
		}
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, formatAlerts(list))
		if len(list) > 0 {
			kb := ackKeyboard(list)
			edit.ReplyMarkup = &kb
		}
		b.send(edit)

	case "dash":
		sum, err := b.svc.Analytics.Dashboard(ctx, actor, arg)
		if err != nil {
			b.answerCallback(cb, errText(err), true)
			return
		}
		b.answerCallback(cb, "", false)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, formatSummary(arg, sum), periodKeyboard()))

	default:
		b.answerCallback(cb, "Unknown action", false)
	}
}
