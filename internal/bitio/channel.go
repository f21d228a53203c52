// Package bitio provides sequential single-bit access over a carrier's
// color bytes. Each color byte carries exactly one bit, stored in its
// least-significant position, so a write changes a channel value by at
// most 1.
package bitio

import "errors"

// ErrCapacityExceeded is returned when a read or write runs past the end
// of the underlying color bytes.
var ErrCapacityExceeded = errors.New("carrier capacity exceeded")

// Channel is a linear cursor over color bytes, one bit per byte, in the
// order the bytes appear in the slice (pixel-major, channel-minor).
// A Channel is built fresh for each encode or decode pass and is not
// safe for concurrent use.
type Channel struct {
	colors []byte
	pos    int
}

// NewChannel returns a Channel positioned at the first color byte.
// The slice is mutated in place by WriteBit.
func NewChannel(colors []byte) *Channel {
	return &Channel{colors: colors}
}

// WriteBit stores b (0 or 1) in the LSB of the next unconsumed color byte
// and advances the cursor. All other bits of the byte are preserved.
func (c *Channel) WriteBit(b byte) error {
	if c.pos >= len(c.colors) {
		return ErrCapacityExceeded
	}
	c.colors[c.pos] = c.colors[c.pos]&0xFE | b&1
	c.pos++
	return nil
}

// ReadBit returns the LSB of the next unconsumed color byte and advances
// the cursor.
func (c *Channel) ReadBit() (byte, error) {
	if c.pos >= len(c.colors) {
		return 0, ErrCapacityExceeded
	}
	b := c.colors[c.pos] & 1
	c.pos++
	return b, nil
}

// Remaining reports how many bits can still be written or read. Intended
// for upfront capacity validation rather than mid-stream bookkeeping.
func (c *Channel) Remaining() int {
	return len(c.colors) - c.pos
}
