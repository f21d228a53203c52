package carrier_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"shh/internal/carrier"
	"shh/internal/stego"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: byte(x * 40),
				G: byte(y * 40),
				B: byte(x*8 + y*8),
				A: 255,
			})
		}
	}
	return img
}

func TestColorByteOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 255})

	im := carrier.FromImage(img)
	want := []byte{1, 2, 3, 4, 5, 6}
	if !bytes.Equal(im.ColorBytes(), want) {
		t.Fatalf("ColorBytes = %v, want %v", im.ColorBytes(), want)
	}
}

func TestCapacityBits(t *testing.T) {
	im := carrier.FromImage(testImage(10, 4))
	if im.CapacityBits() != 120 {
		t.Fatalf("CapacityBits = %d, want 120", im.CapacityBits())
	}
	w, h := im.Dimensions()
	if w != 10 || h != 4 {
		t.Fatalf("Dimensions = (%d, %d), want (10, 4)", w, h)
	}
}

func TestNonZeroOriginBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(3, 7, 5, 9))
	src.Set(3, 7, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	im := carrier.FromImage(src)
	w, h := im.Dimensions()
	if w != 2 || h != 2 {
		t.Fatalf("Dimensions = (%d, %d), want (2, 2)", w, h)
	}
	if got := im.ColorBytes()[:3]; !bytes.Equal(got, []byte{9, 8, 7}) {
		t.Fatalf("first pixel = %v, want [9 8 7]", got)
	}
}

// TestPNGRoundTrip runs a full encode, PNG write, PNG reload, decode
// cycle and checks the hidden bits and the alpha channel survive.
func TestPNGRoundTrip(t *testing.T) {
	im := carrier.FromImage(testImage(20, 20))
	payload := []byte("the quick brown fox")

	if err := stego.Encode(im, "note.txt", payload); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := im.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}

	reloaded, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	im2 := carrier.FromImage(reloaded)

	name, got, err := stego.Decode(im2)
	if err != nil {
		t.Fatal(err)
	}
	if name != "note.txt" {
		t.Fatalf("filename = %q, want %q", name, "note.txt")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

// TestTranslucentCarrierRoundTrip guards the straight-alpha pixel
// handling: with a premultiplied buffer, any pixel with alpha < 255 gets
// its channels rescaled between encode and PNG write, destroying the
// embedded bits.
func TestTranslucentCarrierRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			src.Set(x, y, color.NRGBA{
				R: byte(x * 12),
				G: byte(y * 12),
				B: byte((x + y) * 6),
				A: 128,
			})
		}
	}

	im := carrier.FromImage(src)
	payload := []byte("the quick brown fox")
	if err := stego.Encode(im, "note.txt", payload); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := im.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	reloaded, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	name, got, err := stego.Decode(carrier.FromImage(reloaded))
	if err != nil {
		t.Fatalf("decode after PNG round trip: %v", err)
	}
	if name != "note.txt" {
		t.Fatalf("filename = %q, want %q", name, "note.txt")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

func TestEncodedOutputPreservesAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for p := 0; p < 64; p++ {
		img.Set(p%8, p/8, color.RGBA{R: byte(p), G: byte(p * 2), B: byte(p * 3), A: byte(100 + p)})
	}

	im := carrier.FromImage(img)
	if err := stego.Encode(im, "a", []byte("bb")); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := im.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}

	out, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for p := 0; p < 64; p++ {
		_, _, _, a := out.At(p%8, p/8).RGBA()
		if byte(a>>8) != byte(100+p) {
			t.Fatalf("pixel %d alpha = %d, want %d", p, a>>8, 100+p)
		}
	}
}
