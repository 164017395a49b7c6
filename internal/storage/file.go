package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the session in a mode-0600 JSON file next to the binary.
// This is the default backend for a standalone till.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileRecord struct {
	Token    string          `json:"token"`
	Identity json.RawMessage `json:"identity"`
}

func (s *FileStore) Save(_ context.Context, token string, identity []byte) error {
	raw, err := json.Marshal(fileRecord{Token: token, Identity: identity})
	if err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never leaves a torn session file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Load(_ context.Context) (string, []byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, ErrNoSession
		}
		return "", nil, err
	}
	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Token == "" || len(rec.Identity) == 0 {
		// A corrupt or partial file counts as no session.
		return "", nil, ErrNoSession
	}
	return rec.Token, rec.Identity, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Path returns the backing file location (for logs).
func (s *FileStore) Path() string { return filepath.Clean(s.path) }
