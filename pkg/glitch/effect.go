// Package glitch implements a deterministic image corruption pipeline:
// band-wise chromatic channel displacement, scan-line tearing and simulated
// lossy recompression. The whole transform is a pure function of
// (buffer, params, seed); all randomness comes from one seeded generator.
package glitch

import (
	"image"
	"math/rand"

	"glitcher/pkg/raster"
)

func New() *Effect {
	return &Effect{}
}

// Effect applies the full pipeline. It holds no state between calls, so one
// value can serve concurrent callers as long as each call gets its own
// buffer and seed.
type Effect struct{}

// Apply runs validate, band selection, per-band channel shift and tearing,
// then one recompression pass over the whole result. The caller's buffer is
// never mutated; on error the returned buffer is nil.
func (e *Effect) Apply(buf *raster.Buffer, p Params, seed int64) (*raster.Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := buf.Check(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	dst := applyBands(buf, p, rng)
	return degrade(dst, p.Quality)
}

// applyBands is everything before the recompression pass: a clone of src
// with affected bands shifted and torn.
func applyBands(src *raster.Buffer, p Params, rng *rand.Rand) *raster.Buffer {
	dst := src.Clone()

	bands := SelectBands(src.Height(), p.BandWidth, p.Probability, rng)
	dx, dy := offsetVector(p.ShiftIntensity, p.ShiftAngle)

	for _, b := range bands {
		if !b.Affected {
			continue
		}
		if dx != 0 || dy != 0 {
			shiftChannels(dst, src, b, dx, dy)
		}
		if p.ShiftIntensity >= corruptThreshold {
			corruptBand(dst, b, rng)
		}
	}
	return dst
}

// Glitch adapts Apply to plain image.Image values. It satisfies the
// proc.Processor interface used by the batch and remote layers.
func (e *Effect) Glitch(img image.Image, p Params, seed int64) (image.Image, error) {
	buf, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}

	out, err := e.Apply(buf, p, seed)
	if err != nil {
		return nil, err
	}
	return out.Image(), nil
}
