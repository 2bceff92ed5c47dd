package ports

// ConversationState tracks which chats are awaiting a roster upload.
// Reading the flag always clears it; there is no plain getter.
type ConversationState interface {
	SetAwaiting(chatID int64)

	// ConsumeAwaiting atomically reads the flag and resets it to false.
	ConsumeAwaiting(chatID int64) bool
}
