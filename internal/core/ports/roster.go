package ports

// RosterStore persists the single duty-roster image.
// Reads and writes are mutually exclusive.
type RosterStore interface {
	WriteRoster(data []byte) error

	// ReadRoster returns (nil, nil) when no roster was ever written.
	ReadRoster() ([]byte, error)
}
