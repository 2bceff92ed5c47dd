package bot

import (
	"ESBot/internal/adapters/metrics"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// replySender translates domain replies into transport calls.
type replySender struct {
	bot ports.BotClientPort
	log zerolog.Logger
}

// NewReplySender creates the single outbound path for replies.
func NewReplySender(bot ports.BotClientPort, baseLogger *zerolog.Logger) ports.ReplySender {
	return &replySender{
		bot: bot,
		log: baseLogger.With().Str("component", "reply_sender").Logger(),
	}
}

// Send makes exactly one transport call. Errors come back as *domain.TransportError.
func (s *replySender) Send(ctx context.Context, chatID int64, reply domain.Reply) error {
	var (
		op  string
		err error
	)

	switch reply.Kind {
	case domain.ReplyPhoto:
		op = "send_photo"
		err = s.bot.SendPhoto(ctx, ports.SendPhotoParams{
			ChatID:    chatID,
			FileName:  reply.PhotoName,
			File:      reply.Photo,
			Caption:   reply.Text,
			ParseMode: reply.ParseMode,
		})
	case domain.ReplyText, domain.ReplyKeyboard:
		op = "send_message"
		err = s.bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID:      chatID,
			Text:        reply.Text,
			ParseMode:   reply.ParseMode,
			ReplyMarkup: toMarkup(reply.Keyboard),
		})
	default:
		op = "send"
		err = fmt.Errorf("unknown reply kind %d", reply.Kind)
	}

	metrics.RecordReply(reply.Kind.String(), err)

	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Str("reply_kind", reply.Kind.String()).Msg("Failed to deliver reply")
		return &domain.TransportError{Op: op, ChatID: chatID, Err: err}
	}

	s.log.Debug().Int64("chat_id", chatID).Str("reply_kind", reply.Kind.String()).Msg("Reply delivered")
	return nil
}

func toMarkup(kb *domain.Keyboard) *ports.ReplyMarkup {
	if kb == nil {
		return nil
	}

	rows := make([][]ports.Button, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]ports.Button, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, ports.Button{Text: b.Text, Data: b.Data})
		}
		rows = append(rows, buttons)
	}

	return &ports.ReplyMarkup{Buttons: rows, IsInline: kb.Inline}
}
