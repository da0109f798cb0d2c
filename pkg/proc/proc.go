package proc

import (
	"image"

	"glitcher/pkg/glitch"
)

// Processor renders one glitched image. glitch.Effect is the local
// implementation; remote.Client speaks the same contract over the wire.
type Processor interface {
	Glitch(img image.Image, p glitch.Params, seed int64) (image.Image, error)
}
