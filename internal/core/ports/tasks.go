package ports

import (
	"ESBot/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// Task is a unit of background work bound to one chat.
// Run performs the slow external call and builds the reply sent on success.
type Task struct {
	ID     uuid.UUID
	ChatID int64
	Name   string
	Run    func(ctx context.Context) (domain.Reply, error)
}

// NewTask creates a task with a fresh id.
func NewTask(chatID int64, name string, run func(ctx context.Context) (domain.Reply, error)) Task {
	return Task{
		ID:     uuid.New(),
		ChatID: chatID,
		Name:   name,
		Run:    run,
	}
}

// TaskRunner accepts fire-and-forget tasks. Submit never blocks.
type TaskRunner interface {
	Submit(task Task) error
}
