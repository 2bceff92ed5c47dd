package domain

// ReplyKind enumerates the shapes a reply can take.
type ReplyKind int

const (
	ReplyText ReplyKind = iota
	ReplyKeyboard
	ReplyPhoto
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyText:
		return "text"
	case ReplyKeyboard:
		return "keyboard"
	case ReplyPhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// Button is a single keyboard button. Data is only used by inline keyboards.
type Button struct {
	Text string
	Data string
}

// Keyboard is either a persistent reply keyboard or an inline keyboard.
type Keyboard struct {
	Rows   [][]Button
	Inline bool
}

// Reply is one outbound message. It is sent once and never retried.
type Reply struct {
	Kind      ReplyKind
	Text      string // Message text, or photo caption
	ParseMode string
	Keyboard  *Keyboard
	Photo     []byte
	PhotoName string
}

// TextReply builds a plain text reply.
func TextReply(text string) Reply {
	return Reply{Kind: ReplyText, Text: text}
}

// PhotoReply builds a photo reply with a caption.
func PhotoReply(name string, data []byte, caption string) Reply {
	return Reply{Kind: ReplyPhoto, Text: caption, Photo: data, PhotoName: name}
}
