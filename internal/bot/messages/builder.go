package messages

import (
	"ESBot/internal/core/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder helps construct keyboard replies.
type Builder struct {
	reply domain.Reply
}

// NewBuilder creates a new reply builder with plain-text parse mode.
func NewBuilder() *Builder {
	return &Builder{
		reply: domain.Reply{Kind: domain.ReplyText},
	}
}

// WithText sets the message text.
func (b *Builder) WithText(text string) *Builder {
	b.reply.Text = text
	return b
}

// WithMarkdownV2 switches the parse mode to MarkdownV2.
// The caller is responsible for escaping user-provided parts (see EscapeMarkdown).
func (b *Builder) WithMarkdownV2() *Builder {
	b.reply.ParseMode = tgbotapi.ModeMarkdownV2
	return b
}

// WithInlineButtons adds a set of inline buttons.
func (b *Builder) WithInlineButtons(buttons [][]domain.Button) *Builder {
	b.reply.Kind = domain.ReplyKeyboard
	b.reply.Keyboard = &domain.Keyboard{
		Inline: true,
		Rows:   buttons,
	}
	return b
}

// WithReplyButtons creates a grid of reply buttons.
// It takes a flat list of button texts and arranges them into rows.
func (b *Builder) WithReplyButtons(buttonTexts []string, columns int) *Builder {
	if columns <= 0 {
		columns = 1
	}

	var rows [][]domain.Button
	var row []domain.Button

	for i, text := range buttonTexts {
		row = append(row, domain.Button{Text: text})

		// If we've reached the column limit, or it's the last button
		if (i+1)%columns == 0 || i == len(buttonTexts)-1 {
			rows = append(rows, row)
			row = nil
		}
	}

	b.reply.Kind = domain.ReplyKeyboard
	b.reply.Keyboard = &domain.Keyboard{
		Inline: false,
		Rows:   rows,
	}
	return b
}

// Build returns the final reply.
func (b *Builder) Build() domain.Reply {
	return b.reply
}

// EscapeMarkdown escapes user-provided text for MarkdownV2 templates.
func EscapeMarkdown(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text)
}
