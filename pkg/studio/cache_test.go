package studio

import (
	"image"
	"testing"

	"github.com/spf13/afero"

	"glitcher/pkg/glitch"
)

func TestCacheRoundTrip(t *testing.T) {
	c := &Cache{fs: afero.NewMemMapFs()}
	p := glitch.DefaultParams()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 9)
	}

	if err := c.Store("abc123", p, 7, img); err != nil {
		t.Fatal(err)
	}

	exists, got, err := c.Load("abc123", p, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("stored render not found")
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}

func TestCacheMiss(t *testing.T) {
	c := &Cache{fs: afero.NewMemMapFs()}

	exists, _, err := c.Load("missing", glitch.DefaultParams(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("miss reported as hit")
	}
}

func TestCacheKeyedBySeed(t *testing.T) {
	c := &Cache{fs: afero.NewMemMapFs()}
	p := glitch.DefaultParams()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	if err := c.Store("id", p, 1, img); err != nil {
		t.Fatal(err)
	}

	if exists, _, _ := c.Load("id", p, 2); exists {
		t.Fatal("seed 2 hit a render stored under seed 1")
	}
}

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache("")
	if err != nil {
		t.Fatal(err)
	}

	if exists, _, _ := c.Load("x", glitch.DefaultParams(), 1); exists {
		t.Fatal("disabled cache reported a hit")
	}
	if err := c.Store("x", glitch.DefaultParams(), 1, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
}

func TestFingerprintDistinguishesParams(t *testing.T) {
	a := glitch.DefaultParams()
	b := a
	b.Quality = 31

	if Fingerprint(a, 1) == Fingerprint(b, 1) {
		t.Fatal("different params share a fingerprint")
	}
	if Fingerprint(a, 1) == Fingerprint(a, 2) {
		t.Fatal("different seeds share a fingerprint")
	}
}
