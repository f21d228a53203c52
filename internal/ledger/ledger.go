// Package ledger keeps a local history of encode and decode runs in the
// embedded store, so users can find what was hidden where.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shh/internal/logging"
	"shh/internal/store"
)

var (
	bucket = []byte("history")
	logger = logging.For("ledger")
)

// Operation names recorded per run.
const (
	OpEncode = "encode"
	OpDecode = "decode"
)

// Record describes one completed encode or decode.
type Record struct {
	ID           string    `json:"id"`
	Op           string    `json:"op"`
	Carrier      string    `json:"carrier"`
	Output       string    `json:"output,omitempty"`
	Filename     string    `json:"filename"`
	PayloadBytes int64     `json:"payload_bytes"`
	CapacityBits int       `json:"capacity_bits"`
	UsedBits     int       `json:"used_bits"`
	At           time.Time `json:"at"`
}

// Ledger appends and lists history records. A nil store disables the
// ledger; every method becomes a no-op.
type Ledger struct {
	st store.Store
}

// New returns a Ledger over st. st may be nil.
func New(st store.Store) *Ledger {
	return &Ledger{st: st}
}

// Append stores r, assigning its ID and timestamp if unset.
func (l *Ledger) Append(r Record) error {
	if l.st == nil {
		return nil
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}

	val, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling history record: %w", err)
	}
	// Keys sort chronologically so ForEach yields records in time order.
	key := r.At.UTC().Format(time.RFC3339Nano) + "/" + r.ID
	if err := l.st.Set(bucket, []byte(key), val); err != nil {
		return fmt.Errorf("storing history record: %w", err)
	}
	logger.Debug("recorded operation", "op", r.Op, "id", r.ID)
	return nil
}

// Recent returns up to n records, newest first. n <= 0 means all.
func (l *Ledger) Recent(n int) ([]Record, error) {
	if l.st == nil {
		return nil, nil
	}

	var records []Record
	err := l.st.ForEach(bucket, func(key, value []byte) error {
		var r Record
		if err := json.Unmarshal(value, &r); err != nil {
			logger.Warn("skipping corrupt history record", "key", string(key), "err", err)
			return nil
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// ForEach walks oldest to newest; flip it.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// Clear drops the whole history.
func (l *Ledger) Clear() error {
	if l.st == nil {
		return nil
	}
	return l.st.DropBucket(bucket)
}
