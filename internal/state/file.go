package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"rsi-rotation/internal/model"
)

// FileStore keeps the record in a local JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path. The file is created
// on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (*model.SignalRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("state: read %s: %w", s.path, err)
	}

	var rec model.SignalRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("state: parse %s: %w", s.path, err)
	}
	return &rec, nil
}

func (s *FileStore) Save(ctx context.Context, rec model.SignalRecord) error {
	if err := os.WriteFile(s.path, rec.JSON(), 0o644); err != nil {
		return fmt.Errorf("state: write %s: %w", s.path, err)
	}
	log.Printf("[state] saved record to %s", s.path)
	return nil
}
