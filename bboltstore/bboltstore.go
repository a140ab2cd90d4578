package bboltstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ddeep01/storefront"
)

const (
	bboltFile       = "storefront.db"
	bucketDocuments = "documents"
	bucketUpdated   = "updated"
)

var errBucketNotFound = errors.New("bucket not found")

// BBoltStore is a storefront.DocumentStore kept in a single bbolt file.
type BBoltStore struct {
	boltIndex *bbolt.DB
	dataDir   string // dataDir is the directory holding the bbolt file.
	logger    *slog.Logger
	mu        sync.Mutex
}

// New creates a new BBoltStore. Init must be called before use.
func New(dataDir string, logger *slog.Logger) *BBoltStore {
	if logger == nil {
		logger = defaultLogger()
	}
	return &BBoltStore{
		dataDir: dataDir,
		logger:  logger,
	}
}

// Init opens the bbolt file and creates the buckets.
func (bbs *BBoltStore) Init() error {
	if err := os.MkdirAll(bbs.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	boltIndex, err := bbs.initBolt()
	if err != nil {
		return fmt.Errorf("failed to initialize bbolt: %w", err)
	}
	bbs.boltIndex = boltIndex

	return nil
}

// Path returns the location of the bbolt file.
func (bbs *BBoltStore) Path() string {
	return filepath.Join(bbs.dataDir, bboltFile)
}

// Clear removes every document by recreating the bbolt file.
func (bbs *BBoltStore) Clear() error {
	if err := bbs.Close(); err != nil {
		return fmt.Errorf("failed to close index: %w", err)
	}

	if err := os.Remove(bbs.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove bolt file: %w", err)
	}

	boltIndex, err := bbs.initBolt()
	if err != nil {
		return fmt.Errorf("failed to reinitialize bolt: %w", err)
	}
	bbs.boltIndex = boltIndex

	return nil
}

// Close closes the bbolt file.
func (bbs *BBoltStore) Close() error {
	if bbs.boltIndex == nil {
		return nil
	}
	err := bbs.boltIndex.Close()
	bbs.boltIndex = nil
	return err
}

// Put creates or replaces a document and records when it was stored.
func (bbs *BBoltStore) Put(_ context.Context, key string, doc []byte) error {
	bbs.mu.Lock()
	defer bbs.mu.Unlock()

	err := bbs.boltIndex.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket([]byte(bucketDocuments))
		updated := tx.Bucket([]byte(bucketUpdated))
		if docs == nil || updated == nil {
			return errBucketNotFound
		}

		if err := docs.Put([]byte(key), doc); err != nil {
			return fmt.Errorf("failed to put document in bucket: %w", err)
		}

		stamp := make([]byte, 8)
		binary.BigEndian.PutUint64(stamp, uint64(time.Now().UnixNano()))
		return updated.Put([]byte(key), stamp)
	})
	if err != nil {
		return fmt.Errorf("failed to update document %s in bolt: %w", key, err)
	}

	bbs.logger.Debug("stored document", slog.String("key", key), slog.Int("bytes", len(doc)))
	return nil
}

// Get returns a copy of the document stored under key.
func (bbs *BBoltStore) Get(_ context.Context, key string) ([]byte, error) {
	var doc []byte
	err := bbs.boltIndex.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketDocuments))
		if b == nil {
			return errBucketNotFound
		}

		value := b.Get([]byte(key))
		if value == nil {
			return fmt.Errorf("%w: %s", storefront.ErrDocumentNotFound, key)
		}

		// Values are only valid for the life of the transaction.
		doc = slices.Clone(value)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error getting document %s: %w", key, err)
	}
	return doc, nil
}

// Updated returns when the document under key was last stored.
func (bbs *BBoltStore) Updated(key string) (time.Time, error) {
	var updated time.Time
	err := bbs.boltIndex.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketUpdated))
		if b == nil {
			return errBucketNotFound
		}

		stamp := b.Get([]byte(key))
		if stamp == nil {
			return fmt.Errorf("%w: %s", storefront.ErrDocumentNotFound, key)
		}
		updated = time.Unix(0, int64(binary.BigEndian.Uint64(stamp)))
		return nil
	})
	return updated, err
}

// Delete removes the document stored under key.
func (bbs *BBoltStore) Delete(_ context.Context, key string) error {
	bbs.mu.Lock()
	defer bbs.mu.Unlock()

	if err := bbs.boltIndex.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket([]byte(bucketDocuments))
		updated := tx.Bucket([]byte(bucketUpdated))
		if docs == nil || updated == nil {
			return errBucketNotFound
		}

		if docs.Get([]byte(key)) == nil {
			return fmt.Errorf("%w: %s", storefront.ErrDocumentNotFound, key)
		}

		if err := docs.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		return updated.Delete([]byte(key))
	}); err != nil {
		return fmt.Errorf("failed to update bolt: %w", err)
	}

	return nil
}

// Keys returns the stored keys in ascending order.
func (bbs *BBoltStore) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := bbs.boltIndex.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketDocuments))
		if b == nil {
			return errBucketNotFound
		}

		// bbolt iterates in byte order.
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return keys, nil
}

func (bbs *BBoltStore) initBolt() (*bbolt.DB, error) {
	boltIndex, err := bbolt.Open(bbs.Path(), 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt index: %w", err)
	}

	err = boltIndex.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketDocuments)); err != nil {
			return fmt.Errorf("failed to create documents bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(bucketUpdated)); err != nil {
			return fmt.Errorf("failed to create updated bucket: %w", err)
		}

		return nil
	})

	if err != nil {
		_ = boltIndex.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return boltIndex, nil
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelDebug,
		}))
}
