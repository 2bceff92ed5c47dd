package filestore

import (
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// rosterStore keeps the duty roster image as a single file.
// Writes go to a temp file that is renamed over the target,
// so readers never see a partially written image.
type rosterStore struct {
	fs   afero.Fs
	path string
	mu   sync.RWMutex
	log  zerolog.Logger
}

// NewRosterStore creates a store for the file at path on fsys.
// The parent directory is created if needed.
func NewRosterStore(fsys afero.Fs, path string, baseLogger *zerolog.Logger) (ports.RosterStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.StorageError{Op: "init", Path: path, Err: err}
		}
	}

	log := baseLogger.With().Str("component", "roster_store").Str("path", path).Logger()
	log.Info().Msg("Roster store initialized")

	return &rosterStore{
		fs:   fsys,
		path: path,
		log:  log,
	}, nil
}

// WriteRoster replaces the stored image.
func (s *rosterStore) WriteRoster(data []byte) error {
	if len(data) == 0 {
		return &domain.StorageError{Op: "write", Path: s.path, Err: errors.New("empty image")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return &domain.StorageError{Op: "write", Path: tmp, Err: err}
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return &domain.StorageError{Op: "write", Path: s.path, Err: fmt.Errorf("rename: %w", err)}
	}

	s.log.Info().Int("bytes", len(data)).Msg("Roster image replaced")
	return nil
}

// ReadRoster returns the stored image, or (nil, nil) if none was written yet.
func (s *rosterStore) ReadRoster() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "read", Path: s.path, Err: err}
	}
	return data, nil
}
