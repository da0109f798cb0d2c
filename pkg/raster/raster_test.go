package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewShapeErrors(t *testing.T) {
	cases := []struct {
		name    string
		w, h, c int
	}{
		{"zero width", 0, 10, 3},
		{"zero height", 10, 0, 3},
		{"negative width", -1, 10, 3},
		{"two channels", 10, 10, 2},
		{"five channels", 10, 10, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.w, c.h, c.c)
			var se *ShapeError
			if !errors.As(err, &se) {
				t.Fatalf("want ShapeError, got %v", err)
			}
		})
	}
}

func TestNewValid(t *testing.T) {
	buf, err := New(4, 3, RGB)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(buf.Pix); got != 4*3*3 {
		t.Fatalf("pix len = %d, want %d", got, 4*3*3)
	}
	if err := buf.Check(); err != nil {
		t.Fatalf("fresh buffer failed check: %v", err)
	}
}

func TestCheckZeroValue(t *testing.T) {
	var buf Buffer
	var se *ShapeError
	if err := buf.Check(); !errors.As(err, &se) {
		t.Fatalf("want ShapeError, got %v", err)
	}
}

func TestFromImageNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 20), B: 5, A: 200})
		}
	}

	buf, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != RGBA {
		t.Fatalf("channels = %d, want %d", buf.Channels(), RGBA)
	}

	i := buf.PixOffset(2, 1)
	if buf.Pix[i] != 20 || buf.Pix[i+1] != 20 || buf.Pix[i+2] != 5 || buf.Pix[i+3] != 200 {
		t.Fatalf("pixel (2,1) = %v", buf.Pix[i:i+4])
	}
}

func TestFromImageYCbCr(t *testing.T) {
	img := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio444)

	buf, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != RGB {
		t.Fatalf("channels = %d, want %d", buf.Channels(), RGB)
	}
	if buf.Width() != 4 || buf.Height() != 4 {
		t.Fatalf("shape = %dx%d", buf.Width(), buf.Height())
	}
}

func TestImageRoundTrip(t *testing.T) {
	buf, _ := New(3, 2, RGBA)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(i * 7)
	}

	back, err := FromImage(buf.Image())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Pix, back.Pix) {
		t.Fatal("round trip changed pixel data")
	}
}

func TestImageExpandsRGB(t *testing.T) {
	buf, _ := New(2, 1, RGB)
	buf.Pix[0], buf.Pix[1], buf.Pix[2] = 10, 20, 30

	img := buf.Image()
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 0xFF}
	if got := img.NRGBAAt(0, 0); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestCloneIndependent(t *testing.T) {
	buf, _ := New(2, 2, RGB)
	clone := buf.Clone()
	clone.Pix[0] = 99

	if buf.Pix[0] == 99 {
		t.Fatal("clone shares pixel data with original")
	}
}

func TestAtOutOfBounds(t *testing.T) {
	buf, _ := New(2, 2, RGB)
	if got := buf.At(-1, 0); got != (color.NRGBA{}) {
		t.Fatalf("out of bounds = %v", got)
	}
}
