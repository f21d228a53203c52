package store

// Store is a small bucketed key-value interface backing the operation
// history. The initial implementation uses bbolt; the interface keeps the
// ledger testable and leaves room for another embedded store without
// touching callers.
type Store interface {
	Get(bucket, key []byte) ([]byte, error)
	Set(bucket, key, value []byte) error
	Delete(bucket, key []byte) error
	ForEach(bucket []byte, fn func(key, value []byte) error) error
	DropBucket(bucket []byte) error
	Close() error
}
