package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"cloud.google.com/go/storage"

	"rsi-rotation/internal/model"
)

// GCSStore keeps the record as a single JSON object in a Google Cloud
// Storage bucket, the networked-object-store analogue of FileStore.
type GCSStore struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCSStore creates a GCS-backed store using ambient credentials.
func NewGCSStore(ctx context.Context, bucket, object string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: gcs client: %w", err)
	}
	log.Printf("[state] using gcs store gs://%s/%s", bucket, object)
	return &GCSStore{client: client, bucket: bucket, object: object}, nil
}

func (s *GCSStore) Load(ctx context.Context) (*model.SignalRecord, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("state: gcs read gs://%s/%s: %w", s.bucket, s.object, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("state: gcs read body: %w", err)
	}

	var rec model.SignalRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("state: parse gcs record: %w", err)
	}
	return &rec, nil
}

func (s *GCSStore) Save(ctx context.Context, rec model.SignalRecord) error {
	w := s.client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(rec.JSON()); err != nil {
		w.Close()
		return fmt.Errorf("state: gcs write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("state: gcs commit: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error { return s.client.Close() }
