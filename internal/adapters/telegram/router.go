package telegram

import (
	"ESBot/internal/adapters/metrics"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Router translates raw Telegram updates into domain events and hands
// them to the core handler, one at a time.
type Router struct {
	log     zerolog.Logger
	handler ports.EventHandler
}

// NewRouter creates a new router in front of handler.
func NewRouter(handler ports.EventHandler, baseLogger *zerolog.Logger) *Router {
	return &Router{
		log:     baseLogger.With().Str("component", "tg_router").Logger(),
		handler: handler,
	}
}

// HandleUpdate is the main entry point for a new update from Telegram.
// A panic in the handler is recovered so the update loop keeps going.
func (r *Router) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	// 1. Convert to our domain event
	event, isSupported := r.parseUpdate(update)
	if !isSupported {
		r.log.Warn().Int("update_id", update.UpdateID).Msg("Received unsupported update type")
		return
	}

	// 2. Guard the loop
	defer func() {
		if rec := recover(); rec != nil {
			metrics.HandlerPanicsTotal.Inc()
			r.log.Error().
				Interface("panic", rec).
				Int("update_id", update.UpdateID).
				Int64("chat_id", event.ChatID()).
				Msg("Recovered from handler panic")
		}
	}()

	// 3. Dispatch
	r.handler.Handle(ctx, event)
}

// parseUpdate converts a tgbotapi.Update into a domain.Event.
func (r *Router) parseUpdate(update *tgbotapi.Update) (domain.Event, bool) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		if cb.From == nil {
			return domain.Event{}, false
		}

		// Callbacks answer in the user's private chat unless the
		// originating message tells otherwise.
		chatID := cb.From.ID
		if cb.Message != nil && cb.Message.Chat != nil {
			chatID = cb.Message.Chat.ID
		}

		return domain.Event{
			UpdateID: update.UpdateID,
			Callback: &domain.CallbackQuery{
				ID:     cb.ID,
				ChatID: chatID,
				From:   toSender(cb.From),
				Data:   cb.Data,
			},
		}, true
	}

	if update.Message != nil && update.Message.Chat != nil {
		msg := update.Message

		var photo *domain.PhotoRef
		if len(msg.Photo) > 0 {
			bestPhoto := msg.Photo[len(msg.Photo)-1]
			photo = &domain.PhotoRef{
				FileID:   bestPhoto.FileID,
				FileSize: bestPhoto.FileSize,
			}
		}

		return domain.Event{
			UpdateID: update.UpdateID,
			Message: &domain.IncomingMessage{
				MessageID: msg.MessageID,
				ChatID:    msg.Chat.ID,
				From:      toSender(msg.From),
				Text:      msg.Text,
				Caption:   msg.Caption,
				Photo:     photo,
			},
		}, true
	}

	return domain.Event{}, false // Unsupported update
}

func toSender(u *tgbotapi.User) domain.Sender {
	if u == nil {
		return domain.Sender{}
	}
	return domain.Sender{
		ID:        u.ID,
		UserName:  u.UserName,
		FirstName: u.FirstName,
	}
}
