// Package stego implements the header/payload framing protocol over a
// carrier image's color bytes.
//
// Layout, one bit per color byte:
//
//	[16b filename length, LE bit order]
//	[filename bytes, MSB-first per byte]
//	[64b payload length, LE bit order]
//	[payload bytes, MSB-first per byte]
//
// Length fields are written bit 0 first; data bytes most-significant bit
// first. Both sides must agree on this exactly, so any change here is a
// new, incompatible format.
package stego

import (
	"errors"
	"fmt"
	"strings"

	"shh/internal/bitio"
)

const (
	// MaxFilenameLen is the largest filename (in UTF-8 bytes) the 16-bit
	// length field can describe.
	MaxFilenameLen = 1<<16 - 1

	filenameLenBits = 16
	payloadLenBits  = 64

	// HeaderBits is the fixed per-message overhead: both length fields,
	// excluding the filename bytes themselves.
	HeaderBits = filenameLenBits + payloadLenBits
)

var (
	// ErrFilenameTooLong means the filename's UTF-8 byte length does not
	// fit the 16-bit header field.
	ErrFilenameTooLong = errors.New("filename exceeds 65535 bytes")

	// ErrTruncatedCarrier means decode ran out of color bytes before a
	// field declared by the header could be fully read. The image was not
	// produced by this codec or was cropped after encoding.
	ErrTruncatedCarrier = errors.New("carrier truncated mid-message")
)

// Carrier exposes an image's color bytes as a mutable ordered sequence:
// pixel-major, channel-minor (R0,G0,B0,R1,...), alpha excluded.
type Carrier interface {
	ColorBytes() []byte
}

// RequiredBits returns the number of color bytes an encode of the given
// filename byte length and payload byte length consumes.
func RequiredBits(filenameLen, payloadLen int) int {
	return HeaderBits + filenameLen*8 + payloadLen*8
}

// EncodedBits returns the number of carrier bits Encode consumes for this
// filename and payload. The filename is measured after the same lossy
// UTF-8 substitution Encode applies, so the count matches what is written.
func EncodedBits(filename string, payload []byte) int {
	return RequiredBits(len(lossyUTF8(filename)), len(payload))
}

// Encode embeds filename and payload into the carrier's color bytes,
// mutating only their least-significant bits. The carrier is checked for
// capacity before the first write, so a failed encode leaves it
// byte-identical to its input.
func Encode(c Carrier, filename string, payload []byte) error {
	name := lossyUTF8(filename)
	if len(name) > MaxFilenameLen {
		return fmt.Errorf("%w: %d bytes", ErrFilenameTooLong, len(name))
	}

	ch := bitio.NewChannel(c.ColorBytes())
	required := RequiredBits(len(name), len(payload))
	if required > ch.Remaining() {
		return fmt.Errorf("message needs %d bits, carrier has %d: %w",
			required, ch.Remaining(), bitio.ErrCapacityExceeded)
	}

	// Capacity was validated above; the channel cannot run dry below.
	writeUint(ch, uint64(len(name)), filenameLenBits)
	writeBytes(ch, name)
	writeUint(ch, uint64(len(payload)), payloadLenBits)
	writeBytes(ch, payload)
	return nil
}

// Decode extracts the embedded filename and payload from the carrier.
// Malformed UTF-8 in the stored filename is replaced, never rejected.
func Decode(c Carrier) (filename string, payload []byte, err error) {
	ch := bitio.NewChannel(c.ColorBytes())

	nameLen, err := readUint(ch, filenameLenBits)
	if err != nil {
		return "", nil, fmt.Errorf("reading filename length: %w", ErrTruncatedCarrier)
	}
	name, err := readBytes(ch, int(nameLen))
	if err != nil {
		return "", nil, fmt.Errorf("reading %d-byte filename: %w", nameLen, ErrTruncatedCarrier)
	}

	payloadLen, err := readUint(ch, payloadLenBits)
	if err != nil {
		return "", nil, fmt.Errorf("reading payload length: %w", ErrTruncatedCarrier)
	}
	payload, err = readBytes(ch, int(payloadLen))
	if err != nil {
		return "", nil, fmt.Errorf("reading %d-byte payload: %w", payloadLen, ErrTruncatedCarrier)
	}

	return strings.ToValidUTF8(string(name), "�"), payload, nil
}

// lossyUTF8 replaces invalid UTF-8 sequences with U+FFFD, the encoding
// applied to every filename before it is written.
func lossyUTF8(s string) []byte {
	return []byte(strings.ToValidUTF8(s, "�"))
}

// writeUint writes the low `bits` bits of v, least-significant first.
func writeUint(ch *bitio.Channel, v uint64, bits int) {
	for i := 0; i < bits; i++ {
		ch.WriteBit(byte(v >> i))
	}
}

// writeBytes writes each byte most-significant bit first.
func writeBytes(ch *bitio.Channel, data []byte) {
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			ch.WriteBit(b >> i)
		}
	}
}

func readUint(ch *bitio.Channel, bits int) (uint64, error) {
	var v uint64
	for i := 0; i < bits; i++ {
		b, err := ch.ReadBit()
		if err != nil {
			return 0, err
		}
		v |= uint64(b) << i
	}
	return v, nil
}

func readBytes(ch *bitio.Channel, n int) ([]byte, error) {
	// Check up front so a corrupt length field fails fast instead of
	// allocating a huge buffer first.
	if n < 0 || n > ch.Remaining()/8 {
		return nil, bitio.ErrCapacityExceeded
	}
	out := make([]byte, n)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			bit, err := ch.ReadBit()
			if err != nil {
				return nil, err
			}
			b = b<<1 | bit
		}
		out[i] = b
	}
	return out, nil
}
