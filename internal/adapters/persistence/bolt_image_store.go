package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

const imageURLBucket = "imageURLs"

// boltImageRecord is the stored value; the bucket key is the file name
type boltImageRecord struct {
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// BoltImageStore is the embedded, single-file image cache store
type BoltImageStore struct {
	db *bbolt.DB
}

// OpenBoltImageStore opens (creating if needed) the bolt file at path
func OpenBoltImageStore(path string) (*BoltImageStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &BoltImageStore{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Get returns the URL cached for key
func (s *BoltImageStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var record boltImageRecord
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(imageURLBucket))
		if bucket == nil {
			return fmt.Errorf("image bucket is missing")
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(payload, &record); err != nil {
			return fmt.Errorf("unmarshal image record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return record.URL, found, nil
}

// Put stores entry unless key already exists
func (s *BoltImageStore) Put(ctx context.Context, entry imagecache.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Key) == "" {
		return fmt.Errorf("image file name is required")
	}

	payload, err := json.Marshal(boltImageRecord{URL: entry.URL, CreatedAt: entry.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal image record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(imageURLBucket))
		if bucket == nil {
			return fmt.Errorf("image bucket is missing")
		}
		if bucket.Get([]byte(entry.Key)) != nil {
			return nil
		}
		return bucket.Put([]byte(entry.Key), payload)
	})
}

// Count returns the number of cached entries
func (s *BoltImageStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(imageURLBucket))
		if bucket == nil {
			return fmt.Errorf("image bucket is missing")
		}
		count = bucket.Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the underlying bolt file
func (s *BoltImageStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltImageStore) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(imageURLBucket)); err != nil {
			return fmt.Errorf("create image bucket: %w", err)
		}
		return nil
	})
}
