package glitch

import (
	"math"

	"github.com/samber/lo"

	"glitcher/pkg/raster"
)

// Channel policy: red samples against the offset vector, blue samples with
// it, green (and alpha) stay in place. Sampling outside the image clamps to
// the nearest edge pixel; the buffer never wraps.
const (
	chanRed   = 0
	chanGreen = 1
	chanBlue  = 2
)

// offsetVector converts intensity and angle (degrees) into an integer
// displacement (dx, dy).
func offsetVector(intensity int, angleDeg float64) (int, int) {
	rad := angleDeg * math.Pi / 180
	dx := int(math.Round(float64(intensity) * math.Cos(rad)))
	dy := int(math.Round(float64(intensity) * math.Sin(rad)))
	return dx, dy
}

// shiftChannels rewrites the red and blue samples of dst inside band b,
// sampling from src displaced by (dx, dy). Only rows within the band are
// written; reads may clamp into neighbouring rows.
func shiftChannels(dst, src *raster.Buffer, b Band, dx, dy int) {
	w := src.Width()
	h := src.Height()

	for y := b.Start; y < b.End; y++ {
		ry := lo.Clamp(y-dy, 0, h-1)
		by := lo.Clamp(y+dy, 0, h-1)

		for x := 0; x < w; x++ {
			rx := lo.Clamp(x-dx, 0, w-1)
			bx := lo.Clamp(x+dx, 0, w-1)

			di := dst.PixOffset(x, y)
			dst.Pix[di+chanRed] = src.Pix[src.PixOffset(rx, ry)+chanRed]
			dst.Pix[di+chanBlue] = src.Pix[src.PixOffset(bx, by)+chanBlue]
		}
	}
}
