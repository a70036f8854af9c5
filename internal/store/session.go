package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/navatui/nava/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names
var (
	bucketSession = []byte("session")
	keyCurrent    = []byte("current")
)

// SessionStore persists the signed-in session in a small bolt database.
// Nothing else lives here: catalog rows are always fetched fresh from the
// backend.
type SessionStore struct {
	db *bolt.DB
}

// Open creates or opens the session database under dataDir
func Open(dataDir string) (*SessionStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "nava.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db}, nil
}

// Close releases the database file
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// SaveSession stores the session, replacing any previous one
func (s *SessionStore) SaveSession(sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keyCurrent, data)
	})
}

// LoadSession returns the stored session and whether one exists
func (s *SessionStore) LoadSession() (*domain.Session, bool) {
	var data []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get(keyCurrent); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return nil, false
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, false
	}
	if !sess.Valid() {
		return nil, false
	}
	return &sess, true
}

// ClearSession removes the stored session
func (s *SessionStore) ClearSession() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyCurrent)
	})
}
