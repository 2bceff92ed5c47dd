package ports

// MessageStore formats the configured message templates.
// Unknown keys are a configuration error caught at startup.
type MessageStore interface {
	Lookup(key string, args ...any) string
}
