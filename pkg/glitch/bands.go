package glitch

import (
	"math/rand"
)

// Band is a contiguous row range [Start, End) of the buffer.
type Band struct {
	Start    int
	End      int
	Affected bool
}

func (b Band) Rows() int {
	return b.End - b.Start
}

// SelectBands partitions height rows into bands of bandWidth rows (the last
// band may be shorter) and marks each one affected with independent
// probability p, drawing from rng. A bandWidth larger than height collapses
// to a single band. Selection is fully determined by the rng state, so a
// seeded generator makes it reproducible.
func SelectBands(height, bandWidth int, p float64, rng *rand.Rand) []Band {
	if bandWidth > height {
		bandWidth = height
	}

	bands := make([]Band, 0, (height+bandWidth-1)/bandWidth)
	for start := 0; start < height; start += bandWidth {
		end := start + bandWidth
		if end > height {
			end = height
		}
		bands = append(bands, Band{
			Start:    start,
			End:      end,
			Affected: rng.Float64() < p,
		})
	}
	return bands
}
