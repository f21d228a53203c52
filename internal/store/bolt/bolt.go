// Package bolt implements store.Store on top of bbolt, the embedded
// B+ tree store used for the operation history database.
package bolt

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// Store wraps a bbolt database file.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the bbolt database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(bucket, key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get(key); v != nil {
			val = make([]byte, len(v))
			copy(val, v)
		}
		return nil
	})
	return val, err
}

func (s *Store) Set(bucket, key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		return b.Put(key, value)
	})
}

func (s *Store) Delete(bucket, key []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete(key)
	})
}

// ForEach visits every key in the bucket in key order. Values are only
// valid for the duration of the callback.
func (s *Store) ForEach(bucket []byte, fn func(key, value []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(fn)
	})
}

// DropBucket removes the bucket and everything in it. Dropping a bucket
// that does not exist is not an error.
func (s *Store) DropBucket(bucket []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucket) == nil {
			return nil
		}
		return tx.DeleteBucket(bucket)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
