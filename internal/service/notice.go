// Package service holds the bot's interaction flows: task creation,
// option derivation for the reminder modal, and reminder dispatch.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/operations777/Reminder-bot/internal/domain"
	"github.com/operations777/Reminder-bot/internal/port/chat"
)

// privateNotice delivers text so only userID sees it: ephemeral in
// the origin channel when one is known, direct message otherwise or
// when the ephemeral send fails (the bot may not be in the channel).
func privateNotice(ctx context.Context, m chat.Messenger, channelID, userID, text string) {
	if channelID != "" {
		err := m.SendEphemeral(ctx, channelID, userID, text)
		if err == nil {
			return
		}
		slog.Warn("ephemeral notice failed, falling back to dm",
			"channel_id", channelID, "user_id", userID, "error", err)
	}
	if err := m.SendDM(ctx, userID, text); err != nil {
		slog.Error("private notice undeliverable", "user_id", userID, "error", err)
	}
}

// validationReason strips the wrapped sentinel so notices read as
// plain prose.
func validationReason(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+domain.ErrValidation.Error())
}
