package bot

import (
	"ESBot/internal/bot/messages"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
)

// MainMenu builds the inline main menu. It depends only on the message
// store, so repeated /menu commands produce identical replies.
func MainMenu(msgs ports.MessageStore) domain.Reply {
	return messages.NewBuilder().
		WithText(msgs.Lookup(messages.MainMenuHeader)).
		WithInlineButtons([][]domain.Button{
			{{Text: msgs.Lookup(messages.GreetingButton), Data: CallbackGreeting}},
			{{Text: msgs.Lookup(messages.WhoIsTheBossButton), Data: CallbackWhoIsTheBoss}},
			{{Text: msgs.Lookup(messages.WhoIsYourDaddyButton), Data: CallbackWhoIsYourDaddy}},
		}).
		Build()
}

func (d *Dispatcher) handleMenu(ctx context.Context, msg *domain.IncomingMessage) error {
	return d.reply(ctx, msg.ChatID, MainMenu(d.deps.Messages))
}

func (d *Dispatcher) handleGreeting(ctx context.Context, cb *domain.CallbackQuery) error {
	text := d.deps.Messages.Lookup(messages.GreetingAnswer, cb.From.FirstName)
	return d.reply(ctx, cb.ChatID, domain.TextReply(text))
}

// answerWith replies to a callback with a fixed template.
func (d *Dispatcher) answerWith(key string) func(ctx context.Context, cb *domain.CallbackQuery) error {
	return func(ctx context.Context, cb *domain.CallbackQuery) error {
		return d.reply(ctx, cb.ChatID, domain.TextReply(d.deps.Messages.Lookup(key)))
	}
}
