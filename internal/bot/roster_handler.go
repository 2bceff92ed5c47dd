package bot

import (
	"ESBot/internal/bot/messages"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// handleRosterGet reads the stored roster in the roster pool.
func (d *Dispatcher) handleRosterGet(ctx context.Context, msg *domain.IncomingMessage) error {
	notFound := d.deps.Messages.Lookup(messages.RosterNotFound)
	caption := d.deps.Messages.Lookup(messages.RosterGet)

	task := ports.NewTask(msg.ChatID, "roster_get", func(context.Context) (domain.Reply, error) {
		image, err := d.deps.Roster.ReadRoster()
		if err != nil {
			return domain.Reply{}, fmt.Errorf("read roster: %w", err)
		}
		if image == nil {
			return domain.TextReply(notFound), nil
		}
		return domain.PhotoReply(rosterFileName, image, caption), nil
	})

	return d.submit(ctx, d.deps.RosterTasks, task)
}

// handleRosterUpdateRequest arms the chat for one upload.
func (d *Dispatcher) handleRosterUpdateRequest(ctx context.Context, msg *domain.IncomingMessage) error {
	d.deps.State.SetAwaiting(msg.ChatID)
	return d.reply(ctx, msg.ChatID, domain.TextReply(d.deps.Messages.Lookup(messages.RosterImageRequest)))
}

// handleRosterUpdate receives the message that follows /dr_update. The
// awaiting flag is already consumed, so a wrong input simply ends the flow.
func (d *Dispatcher) handleRosterUpdate(ctx context.Context, msg *domain.IncomingMessage) error {
	log := zerolog.Ctx(ctx)

	// 1. Expect a photo
	if msg.Photo == nil {
		log.Info().Msg("Roster update without photo")
		if err := d.reply(ctx, msg.ChatID, domain.TextReply(d.deps.Messages.Lookup(messages.RosterWrongInput))); err != nil {
			return err
		}
		return domain.ErrWrongInput
	}

	// 2. Resolve the download URL (a fast platform call, done inline)
	fileURL, err := d.deps.Bot.GetFileURL(ctx, msg.Photo.FileID)
	if err != nil {
		if sendErr := d.reply(ctx, msg.ChatID, domain.TextReply(d.deps.Messages.Lookup(messages.DefaultError))); sendErr != nil {
			log.Error().Err(sendErr).Msg("Failed to send failure reply")
		}
		return fmt.Errorf("resolve roster file: %w", err)
	}

	// 3. Download and store in the roster pool
	done := d.deps.Messages.Lookup(messages.RosterUpdated)
	task := ports.NewTask(msg.ChatID, "roster_update", func(ctx context.Context) (domain.Reply, error) {
		image, err := d.deps.Downloader.Download(ctx, fileURL)
		if err != nil {
			return domain.Reply{}, fmt.Errorf("download roster: %w", err)
		}
		if err := d.deps.Roster.WriteRoster(image); err != nil {
			return domain.Reply{}, fmt.Errorf("write roster: %w", err)
		}
		return domain.TextReply(done), nil
	})

	return d.submit(ctx, d.deps.RosterTasks, task)
}
