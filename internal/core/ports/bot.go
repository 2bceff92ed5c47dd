package ports

import (
	"ESBot/internal/core/domain"
	"context"
)

// --- Bot Message Structures ---

// Button represents a single button in a keyboard.
type Button struct {
	Text string
	Data string // For callbacks
}

// ReplyMarkup represents any kind of keyboard markup.
type ReplyMarkup struct {
	Buttons  [][]Button
	IsInline bool // Differentiates between Inline and Reply keyboards
}

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID      int64
	Text        string
	ParseMode   string // e.g., "MarkdownV2" or "HTML"
	ReplyMarkup *ReplyMarkup
}

// SendPhotoParams holds the options for uploading a photo.
type SendPhotoParams struct {
	ChatID    int64
	FileName  string
	File      []byte
	Caption   string
	ParseMode string
}

// AnswerCallbackParams acknowledges a callback query.
type AnswerCallbackParams struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
}

// BotCommand is an entry of the platform's command menu.
type BotCommand struct {
	Command     string
	Description string
}

// --- Bot Client Port (Outbound) ---

// BotClientPort defines the interface for talking back to the platform.
// This is the "Adapter" our core logic will call.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
	SendPhoto(ctx context.Context, params SendPhotoParams) error
	AnswerCallbackQuery(ctx context.Context, params AnswerCallbackParams) error
	// GetFileURL resolves an uploaded file id into a downloadable URL.
	GetFileURL(ctx context.Context, fileID string) (string, error)
	SetMenuCommands(ctx context.Context, commands []BotCommand) error
}

// ReplySender delivers one domain.Reply through the BotClientPort.
type ReplySender interface {
	Send(ctx context.Context, chatID int64, reply domain.Reply) error
}

// --- Inbound ---

// EventHandler consumes translated platform events one at a time.
type EventHandler interface {
	Handle(ctx context.Context, event domain.Event)
}
