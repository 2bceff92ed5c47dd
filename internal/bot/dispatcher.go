package bot

import (
	"ESBot/internal/adapters/metrics"
	"ESBot/internal/bot/messages"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Deps groups everything the Dispatcher talks to.
type Deps struct {
	Bot        ports.BotClientPort
	Sender     ports.ReplySender
	Messages   ports.MessageStore
	State      ports.ConversationState
	Images     ports.ImageFetcher
	Downloader ports.FileDownloader
	Roster     ports.RosterStore

	CatTasks    ports.TaskRunner
	RosterTasks ports.TaskRunner
}

type messageHandler func(ctx context.Context, msg *domain.IncomingMessage) error

// trigger maps one or more exact texts to a message handler.
type trigger struct {
	route  string
	texts  []string
	handle messageHandler
}

// Dispatcher routes every event to exactly one handler.
// Handle must be called by a single consumer, one event at a time.
type Dispatcher struct {
	deps     Deps
	log      zerolog.Logger
	triggers []trigger
	callback map[string]func(ctx context.Context, cb *domain.CallbackQuery) error
}

var _ ports.EventHandler = (*Dispatcher)(nil)

// NewDispatcher builds the trigger table. The alternate keyboard labels are
// read from the message store once, here.
func NewDispatcher(deps Deps, baseLogger *zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		deps: deps,
		log:  baseLogger.With().Str("component", "dispatcher").Logger(),
	}

	menuLabel := deps.Messages.Lookup(messages.ReplyKeyboardMenuLabel)
	catLabel := deps.Messages.Lookup(messages.ReplyKeyboardCatLabel)

	// Order matters: first match wins.
	d.triggers = []trigger{
		{route: "start", texts: []string{CmdStart}, handle: d.handleStart},
		{route: "menu", texts: []string{CmdMenu, menuLabel}, handle: d.handleMenu},
		{route: "cat", texts: []string{CmdCat, catLabel}, handle: d.handleCat},
		{route: "roster_get", texts: []string{CmdRosterGet}, handle: d.handleRosterGet},
		{route: "roster_update_request", texts: []string{CmdRosterUpdate}, handle: d.handleRosterUpdateRequest},
	}

	d.callback = map[string]func(ctx context.Context, cb *domain.CallbackQuery) error{
		CallbackGreeting:       d.handleGreeting,
		CallbackWhoIsTheBoss:   d.answerWith(messages.WhoIsTheBossAnswer),
		CallbackWhoIsYourDaddy: d.answerWith(messages.WhoIsYourDaddyAnswer),
	}

	return d
}

// Handle is the entry point for one translated platform event.
func (d *Dispatcher) Handle(ctx context.Context, event domain.Event) {
	// 1. Add logger context
	ctxLogger := d.log.With().
		Int("update_id", event.UpdateID).
		Int64("chat_id", event.ChatID()).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	// 2. Route by event kind
	var (
		route string
		err   error
	)
	switch {
	case event.Callback != nil:
		route, err = d.dispatchCallback(ctx, ctxLogger, event.Callback)
	case event.Message != nil:
		route, err = d.dispatchMessage(ctx, ctxLogger, event.Message)
	default:
		ctxLogger.Warn().Msg("Received event without message or callback")
		return
	}

	metrics.RecordUpdate(event.Kind(), route)

	// 3. Handler errors are final here; the loop carries on.
	if errors.Is(err, domain.ErrWrongInput) {
		ctxLogger.Info().Str("route", route).Msg("Rejected user input")
		return
	}
	if err != nil {
		ctxLogger.Error().Err(err).
			Str("route", route).
			Str("error_kind", domain.ErrorKind(err)).
			Msg("Handler failed")
	}
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, log zerolog.Logger, cb *domain.CallbackQuery) (string, error) {
	log.Info().
		Str("user_name", cb.From.UserName).
		Str("data", cb.Data).
		Msg("Callback received")

	// Acknowledge first so the client stops its spinner.
	if err := d.deps.Bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{CallbackQueryID: cb.ID}); err != nil {
		log.Warn().Err(err).Str("callback_query_id", cb.ID).Msg("Failed to acknowledge callback")
	}

	handler, ok := d.callback[cb.Data]
	if !ok {
		return "unsupported", d.reply(ctx, cb.ChatID, domain.TextReply(d.deps.Messages.Lookup(messages.Unsupported)))
	}
	return "callback:" + cb.Data, handler(ctx, cb)
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, log zerolog.Logger, msg *domain.IncomingMessage) (string, error) {
	text := msg.CommandText()
	log.Info().
		Str("user_name", msg.From.UserName).
		Str("text", text).
		Bool("has_photo", msg.Photo != nil).
		Msg("Message received")

	// 1. A pending /dr_update takes the next message whatever it is.
	if d.deps.State.ConsumeAwaiting(msg.ChatID) {
		return "roster_update", d.handleRosterUpdate(ctx, msg)
	}

	// 2. Exact text triggers
	for _, t := range d.triggers {
		for _, candidate := range t.texts {
			if candidate != "" && text == candidate {
				return t.route, t.handle(ctx, msg)
			}
		}
	}

	return "unsupported", d.reply(ctx, msg.ChatID, domain.TextReply(d.deps.Messages.Lookup(messages.Unsupported)))
}

// reply sends synchronously from the consumer.
func (d *Dispatcher) reply(ctx context.Context, chatID int64, reply domain.Reply) error {
	return d.deps.Sender.Send(ctx, chatID, reply)
}

// submit hands a task to a pool. A refused task is answered right away
// with the generic failure reply so the chat still gets exactly one answer.
func (d *Dispatcher) submit(ctx context.Context, runner ports.TaskRunner, task ports.Task) error {
	err := runner.Submit(task)
	if err == nil {
		return nil
	}

	zerolog.Ctx(ctx).Warn().Err(err).Str("task", task.Name).Msg("Task refused, sending failure reply")
	if sendErr := d.reply(ctx, task.ChatID, domain.TextReply(d.deps.Messages.Lookup(messages.DefaultError))); sendErr != nil {
		return fmt.Errorf("submit %s: %w (failure reply: %v)", task.Name, err, sendErr)
	}
	return fmt.Errorf("submit %s: %w", task.Name, err)
}
