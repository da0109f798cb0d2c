package glitch

import (
	"math/rand"

	"glitcher/pkg/raster"
)

// corruptThreshold is the smallest shift intensity at which the scan-line
// tearing pass runs; weaker settings keep the band shift only.
const corruptThreshold = 5

// corruptBand tears an affected band by tiling a thin slice of its rows
// across the band height. The slice position and height come from rng, so
// the result is reproducible for a given seed. Only rows inside the band
// are touched.
func corruptBand(dst *raster.Buffer, b Band, rng *rand.Rand) {
	rows := b.Rows()
	if rows < 2 {
		return
	}

	sliceH := 1 + rng.Intn(rows-1)
	sliceAt := b.Start + rng.Intn(rows-sliceH+1)

	// snapshot the slice before overwriting rows it may live in
	stride := dst.Stride()
	slice := make([]uint8, sliceH*stride)
	for i := 0; i < sliceH; i++ {
		copy(slice[i*stride:(i+1)*stride], dst.Row(sliceAt+i))
	}

	for y := b.Start; y < b.End; y++ {
		i := (y - b.Start) % sliceH
		copy(dst.Row(y), slice[i*stride:(i+1)*stride])
	}
}
