package bot

import (
	"ESBot/internal/bot/messages"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"fmt"
)

// handleCat confirms right away and fetches the image in the cat pool.
func (d *Dispatcher) handleCat(ctx context.Context, msg *domain.IncomingMessage) error {
	// 1. Immediate notice
	if err := d.reply(ctx, msg.ChatID, domain.TextReply(d.deps.Messages.Lookup(messages.RandomCatStarted))); err != nil {
		return err
	}

	// 2. Offload the fetch
	caption := d.deps.Messages.Lookup(messages.RandomCatFinished)
	task := ports.NewTask(msg.ChatID, "random_cat", func(ctx context.Context) (domain.Reply, error) {
		image, err := d.deps.Images.FetchRandomImage(ctx)
		if err != nil {
			return domain.Reply{}, fmt.Errorf("fetch random cat: %w", err)
		}
		return domain.PhotoReply(catFileName, image, caption), nil
	})

	return d.submit(ctx, d.deps.CatTasks, task)
}
