package bitio

import (
	"errors"
	"testing"
)

func TestChannelWriteSetsOnlyLSB(t *testing.T) {
	colors := []byte{0b1010_0000, 0b1001_0111, 0b0100_0100, 0b0010_1001}
	ch := NewChannel(colors)

	for _, bit := range []byte{1, 0, 1, 0} {
		if err := ch.WriteBit(bit); err != nil {
			t.Fatal(err)
		}
	}

	want := []byte{0b1010_0001, 0b1001_0110, 0b0100_0101, 0b0010_1000}
	for i := range want {
		if colors[i] != want[i] {
			t.Fatalf("colors[%d] = %08b, want %08b", i, colors[i], want[i])
		}
	}
}

func TestChannelReadBit(t *testing.T) {
	ch := NewChannel([]byte{0xFF, 0x00, 0x03, 0xFE})
	want := []byte{1, 0, 1, 0}
	for i, w := range want {
		got, err := ch.ReadBit()
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestChannelExhaustion(t *testing.T) {
	ch := NewChannel(make([]byte, 2))
	for i := 0; i < 2; i++ {
		if err := ch.WriteBit(1); err != nil {
			t.Fatal(err)
		}
	}
	if err := ch.WriteBit(1); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("WriteBit past end = %v, want ErrCapacityExceeded", err)
	}

	ch = NewChannel(nil)
	if _, err := ch.ReadBit(); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("ReadBit on empty channel = %v, want ErrCapacityExceeded", err)
	}
}

func TestChannelRemaining(t *testing.T) {
	ch := NewChannel(make([]byte, 5))
	if ch.Remaining() != 5 {
		t.Fatalf("Remaining = %d, want 5", ch.Remaining())
	}
	ch.WriteBit(0)
	ch.WriteBit(1)
	if ch.Remaining() != 3 {
		t.Fatalf("Remaining after 2 writes = %d, want 3", ch.Remaining())
	}
}

func TestChannelWriteNonCanonicalBit(t *testing.T) {
	colors := []byte{0x00}
	ch := NewChannel(colors)
	// only the low bit of the argument is used
	if err := ch.WriteBit(0xFF); err != nil {
		t.Fatal(err)
	}
	if colors[0] != 0x01 {
		t.Fatalf("colors[0] = %#x, want 0x01", colors[0])
	}
}
