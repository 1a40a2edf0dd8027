package infra

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials are the persisted session tokens. They are the only client-side
// state that survives a restart.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CredentialStore is the durable key-value collaborator holding the session
// tokens between runs (the browser-storage analogue).
type CredentialStore interface {
	Load() (*Credentials, error) // nil, nil when no credentials are stored
	Save(*Credentials) error
	Clear() error
}

// FileStore keeps credentials in a mode-0600 JSON file under the user config
// directory.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credstore: read %s: %w", s.path, err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("credstore: parse %s: %w", s.path, err)
	}
	if creds.Access == "" {
		return nil, nil
	}
	return &creds, nil
}

func (s *FileStore) Save(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("credstore: create dir: %w", err)
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a half-written token file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("credstore: write: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory CredentialStore for tests.
type MemStore struct {
	creds *Credentials
}

func (s *MemStore) Load() (*Credentials, error) { return s.creds, nil }
func (s *MemStore) Save(c *Credentials) error   { s.creds = c; return nil }
func (s *MemStore) Clear() error                { s.creds = nil; return nil }
