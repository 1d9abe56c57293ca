package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const logVersion = "1.0"

// Store persists the session collection as a single JSON document. Every
// save rewrites the whole file; there is no incremental append.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

type logFile struct {
	Metadata logMetadata `json:"metadata"`
	Sessions []*Session  `json:"sessions"`
}

type logMetadata struct {
	CreatedAt     string `json:"created_at"`
	TotalSessions int    `json:"total_sessions"`
	LogVersion    string `json:"log_version"`
}

// Load reads the persisted session history. A missing file is an empty
// history, not an error.
func (s *Store) Load() ([]*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading filter log %q: %w", s.path, err)
	}

	var file logFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing filter log %q: %w", s.path, err)
	}

	return file.Sessions, nil
}

// Save overwrites the log file with the full session collection.
func (s *Store) Save(sessions []*Session) error {
	if sessions == nil {
		sessions = []*Session{}
	}

	file := logFile{
		Metadata: logMetadata{
			CreatedAt:     s.now().Format(time.RFC3339),
			TotalSessions: len(sessions),
			LogVersion:    logVersion,
		},
		Sessions: sessions,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding filter log: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing filter log %q: %w", s.path, err)
	}
	return nil
}
