package bot

import (
	"ESBot/internal/bot/messages"
	"ESBot/internal/core/domain"
	"context"
)

// handleStart shows the persistent reply keyboard with a personalised header.
func (d *Dispatcher) handleStart(ctx context.Context, msg *domain.IncomingMessage) error {
	header := d.deps.Messages.Lookup(messages.ReplyKeyboardHeader, messages.EscapeMarkdown(msg.From.FirstName))

	reply := messages.NewBuilder().
		WithText(header).
		WithMarkdownV2().
		WithReplyButtons([]string{
			d.deps.Messages.Lookup(messages.ReplyKeyboardMenuLabel),
			d.deps.Messages.Lookup(messages.ReplyKeyboardCatLabel),
		}, 2).
		Build()

	return d.reply(ctx, msg.ChatID, reply)
}
