package glitch

import (
	"bytes"
	"testing"

	"glitcher/pkg/raster"
)

func TestDegradeKeepsShape(t *testing.T) {
	for _, channels := range []int{raster.RGB, raster.RGBA} {
		buf, err := raster.New(33, 21, channels)
		if err != nil {
			t.Fatal(err)
		}
		for i := range buf.Pix {
			buf.Pix[i] = uint8(i % 251)
		}

		out, err := degrade(buf, 30)
		if err != nil {
			t.Fatal(err)
		}

		if out.Width() != 33 || out.Height() != 21 || out.Channels() != channels {
			t.Fatalf("shape = %dx%dx%d, want 33x21x%d", out.Width(), out.Height(), out.Channels(), channels)
		}
	}
}

func TestDegradePreservesAlpha(t *testing.T) {
	buf, err := raster.New(16, 16, raster.RGBA)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			i := buf.PixOffset(x, y)
			buf.Pix[i] = 128
			buf.Pix[i+1] = 64
			buf.Pix[i+2] = 32
			buf.Pix[i+3] = 200
		}
	}

	out, err := degrade(buf, 50)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a := out.Pix[out.PixOffset(x, y)+3]; a != 200 {
				t.Fatalf("alpha at (%d,%d) = %d, want 200", x, y, a)
			}
		}
	}
}

func TestDegradeDeterministic(t *testing.T) {
	buf, _ := raster.New(20, 20, raster.RGB)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(i * 13)
	}

	a, err := degrade(buf, 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := degrade(buf, 10)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("recompression is not deterministic")
	}
}
