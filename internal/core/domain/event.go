package domain

// Sender identifies the platform user behind an event.
type Sender struct {
	ID        int64
	UserName  string
	FirstName string
}

// PhotoRef points at a photo already uploaded to the platform.
type PhotoRef struct {
	FileID   string
	FileSize int
}

// IncomingMessage is a plain chat message (text, caption and/or photo).
type IncomingMessage struct {
	MessageID int
	ChatID    int64
	From      Sender
	Text      string
	Caption   string
	Photo     *PhotoRef // Largest available size, nil if no photo
}

// CommandText returns the text used for command matching.
// Photos sent with a caption are matched on the caption.
func (m *IncomingMessage) CommandText() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// CallbackQuery is produced when a user presses an inline button.
type CallbackQuery struct {
	ID     string // Must be acknowledged exactly once
	ChatID int64
	From   Sender
	Data   string
}

// Event is a tagged union: exactly one of Message or Callback is set.
type Event struct {
	UpdateID int
	Message  *IncomingMessage
	Callback *CallbackQuery
}

// ChatID returns the conversation the event belongs to.
func (e Event) ChatID() int64 {
	switch {
	case e.Message != nil:
		return e.Message.ChatID
	case e.Callback != nil:
		return e.Callback.ChatID
	default:
		return 0
	}
}

// Kind is used as a log and metrics label.
func (e Event) Kind() string {
	switch {
	case e.Message != nil:
		return "message"
	case e.Callback != nil:
		return "callback"
	default:
		return "unknown"
	}
}
