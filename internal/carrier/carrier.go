// Package carrier adapts an on-disk image to the flat color-byte sequence
// the codec operates on. Any format the image registry can decode is
// accepted as input; encoded output is always PNG, since a lossy format
// would re-quantize channel values and destroy the embedded bits.
package carrier

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	// Accepted carrier input formats.
	_ "image/gif"
	_ "image/jpeg"
)

// Image holds a decoded carrier: the pixel buffer plus its R,G,B bytes
// extracted into one contiguous slice (pixel-major, channel-minor, alpha
// excluded). The codec mutates the slice; SavePNG folds the bytes back
// into the pixel buffer. Pixels are kept straight-alpha (NRGBA): a
// premultiplied buffer would rescale channel values on encode and wipe
// out the embedded LSBs wherever alpha < 255.
type Image struct {
	pix    *image.NRGBA
	colors []byte
}

// Load reads and decodes the image at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening carrier: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding carrier %q: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage wraps an already-decoded image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	pix := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pix, pix.Bounds(), src, b.Min, draw.Src)

	n := b.Dx() * b.Dy()
	colors := make([]byte, 0, 3*n)
	for i := 0; i < len(pix.Pix); i += 4 {
		colors = append(colors, pix.Pix[i], pix.Pix[i+1], pix.Pix[i+2])
	}
	return &Image{pix: pix, colors: colors}
}

// ColorBytes returns the mutable R,G,B byte sequence in pixel order.
func (im *Image) ColorBytes() []byte { return im.colors }

// Dimensions returns the carrier's width and height in pixels.
func (im *Image) Dimensions() (w, h int) {
	b := im.pix.Bounds()
	return b.Dx(), b.Dy()
}

// CapacityBits returns the total number of bits the carrier can hold,
// one per color byte.
func (im *Image) CapacityBits() int { return len(im.colors) }

// WritePNG folds the (possibly mutated) color bytes back into the pixel
// buffer and writes the image as PNG. Alpha bytes are passed through
// unchanged.
func (im *Image) WritePNG(w io.Writer) error {
	for i, j := 0, 0; i < len(im.pix.Pix); i, j = i+4, j+3 {
		im.pix.Pix[i] = im.colors[j]
		im.pix.Pix[i+1] = im.colors[j+1]
		im.pix.Pix[i+2] = im.colors[j+2]
	}
	return png.Encode(w, im.pix)
}

// SavePNG writes the carrier to path via WritePNG.
func (im *Image) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := im.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}
