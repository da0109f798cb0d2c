package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Supported channel counts.
const (
	RGB  = 3
	RGBA = 4
)

// ShapeError reports a buffer whose dimensions or channel count the
// pipeline cannot work with.
type ShapeError struct {
	Width    int
	Height   int
	Channels int
	Reason   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("raster: bad shape %dx%dx%d: %s", e.Width, e.Height, e.Channels, e.Reason)
}

func New(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &ShapeError{Width: width, Height: height, Channels: channels, Reason: "non-positive dimensions"}
	}
	if channels != RGB && channels != RGBA {
		return nil, &ShapeError{Width: width, Height: height, Channels: channels, Reason: "channel count must be 3 or 4"}
	}

	return &Buffer{
		Pix:      make([]uint8, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
		stride:   width * channels,
	}, nil
}

// Buffer is a row-major W*H*C raster of 8-bit samples. It implements the
// image.Image interface so it can be handed straight to the stdlib codecs.
type Buffer struct {
	Pix      []uint8
	width    int
	height   int
	channels int
	stride   int
}

func (b *Buffer) Width() int    { return b.width }
func (b *Buffer) Height() int   { return b.height }
func (b *Buffer) Channels() int { return b.channels }
func (b *Buffer) Stride() int   { return b.stride }

// Check verifies the buffer invariants hold; a zero-value or hand-built
// Buffer may violate them.
func (b *Buffer) Check() error {
	if b.width <= 0 || b.height <= 0 {
		return &ShapeError{Width: b.width, Height: b.height, Channels: b.channels, Reason: "non-positive dimensions"}
	}
	if b.channels != RGB && b.channels != RGBA {
		return &ShapeError{Width: b.width, Height: b.height, Channels: b.channels, Reason: "channel count must be 3 or 4"}
	}
	if len(b.Pix) != b.width*b.height*b.channels {
		return &ShapeError{Width: b.width, Height: b.height, Channels: b.channels, Reason: "pixel data length mismatch"}
	}
	return nil
}

// PixOffset returns the index of the first sample of the pixel at (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return y*b.stride + x*b.channels
}

// Row returns the samples of row y as a slice aliasing the buffer.
func (b *Buffer) Row(y int) []uint8 {
	return b.Pix[y*b.stride : (y+1)*b.stride]
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.NRGBA{}
	}
	i := b.PixOffset(x, y)
	c := color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: 0xFF}
	if b.channels == RGBA {
		c.A = b.Pix[i+3]
	}
	return c
}

func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Pix:      make([]uint8, len(b.Pix)),
		width:    b.width,
		height:   b.height,
		channels: b.channels,
		stride:   b.stride,
	}
	copy(out.Pix, b.Pix)
	return out
}

// FromImage copies a decoded image into a Buffer. NRGBA and RGBA sources
// keep their alpha channel; everything else (notably the YCbCr images the
// JPEG decoder produces) becomes a 3-channel buffer.
func FromImage(img image.Image) (*Buffer, error) {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		buf, err := New(w, h, RGBA)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			si := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(buf.Row(y), src.Pix[si:si+w*4])
		}
		return buf, nil

	case *image.RGBA:
		buf, err := New(w, h, RGBA)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			si := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(buf.Row(y), src.Pix[si:si+w*4])
		}
		return buf, nil

	default:
		buf, err := New(w, h, RGB)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
				i := buf.PixOffset(x, y)
				buf.Pix[i] = c.R
				buf.Pix[i+1] = c.G
				buf.Pix[i+2] = c.B
			}
		}
		return buf, nil
	}
}

// Image expands the buffer into an *image.NRGBA; 3-channel buffers get an
// opaque alpha channel.
func (b *Buffer) Image() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))

	if b.channels == RGBA {
		for y := 0; y < b.height; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.stride], b.Row(y))
		}
		return out
	}

	for y := 0; y < b.height; y++ {
		row := b.Row(y)
		for x := 0; x < b.width; x++ {
			si := x * RGB
			di := y*out.Stride + x*4
			out.Pix[di] = row[si]
			out.Pix[di+1] = row[si+1]
			out.Pix[di+2] = row[si+2]
			out.Pix[di+3] = 0xFF
		}
	}
	return out
}
