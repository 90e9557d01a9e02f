package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/inventory-tracker/internal/analytics"
	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
)

const maxAckButtons = 10

func ackKeyboard(list []alerts.Alert) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, a := range list {
		if i == maxAckButtons {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✅ %s %s", a.Type, a.MaterialCode), "ack:"+a.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func periodKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(analytics.Periods))
	for _, p := range analytics.Periods {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(p, "dash:"+p))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
