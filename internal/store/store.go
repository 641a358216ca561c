package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Bucket names.
const (
	BucketAccounts     = "accounts"
	BucketTransactions = "transactions"
	BucketSplits       = "splits"
)

// Store is the bolt-backed persistence collaborator. All multi-row
// writes happen inside a single bolt update transaction, so a voucher
// header and its splits are visible either completely or not at all.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the database at path and ensures
// all buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketAccounts, BucketTransactions, BucketSplits} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("creating bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// itob converts an int64 key to a big-endian byte slice so bucket
// iteration yields rows in insertion order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

// put JSON-encodes v under key id in the named bucket of tx.
func put(tx *bolt.Tx, bucket string, id int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s row: %w", bucket, err)
	}
	return tx.Bucket([]byte(bucket)).Put(itob(id), data)
}

// nextID reserves the next sequence number in the named bucket.
func nextID(tx *bolt.Tx, bucket string) (int64, error) {
	seq, err := tx.Bucket([]byte(bucket)).NextSequence()
	if err != nil {
		return 0, fmt.Errorf("allocating %s id: %w", bucket, err)
	}
	return int64(seq), nil
}
