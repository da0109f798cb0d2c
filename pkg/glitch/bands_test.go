package glitch

import (
	"math/rand"
	"testing"
)

func TestSelectBandsPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bands := SelectBands(17, 5, 0.5, rng)

	if len(bands) != 4 {
		t.Fatalf("bands = %d, want 4", len(bands))
	}

	next := 0
	for _, b := range bands {
		if b.Start != next {
			t.Fatalf("band starts at %d, want %d", b.Start, next)
		}
		if b.Rows() < 1 || b.Rows() > 5 {
			t.Fatalf("band rows = %d", b.Rows())
		}
		next = b.End
	}
	if next != 17 {
		t.Fatalf("bands cover %d rows, want 17", next)
	}
}

func TestSelectBandsWiderThanImage(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bands := SelectBands(4, 10, 1, rng)

	if len(bands) != 1 {
		t.Fatalf("bands = %d, want 1", len(bands))
	}
	if bands[0].Start != 0 || bands[0].End != 4 {
		t.Fatalf("band = [%d,%d), want [0,4)", bands[0].Start, bands[0].End)
	}
}

func TestSelectBandsProbabilityExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, b := range SelectBands(100, 3, 0, rng) {
		if b.Affected {
			t.Fatal("band affected at p=0")
		}
	}

	rng = rand.New(rand.NewSource(42))
	for _, b := range SelectBands(100, 3, 1, rng) {
		if !b.Affected {
			t.Fatal("band unaffected at p=1")
		}
	}
}

func TestSelectBandsDeterministic(t *testing.T) {
	a := SelectBands(120, 4, 0.5, rand.New(rand.NewSource(7)))
	b := SelectBands(120, 4, 0.5, rand.New(rand.NewSource(7)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("band %d differs across runs with same seed", i)
		}
	}
}
