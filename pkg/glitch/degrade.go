package glitch

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"glitcher/pkg/raster"
)

// EncodingError reports a failed recompression pass.
type EncodingError struct {
	Op  string
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("glitch: quality degrade %s: %s", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// degrade runs the whole buffer through a JPEG encode/decode round trip at
// the given quality, reintroducing block and ringing artifacts. The output
// has the same shape as the input; the alpha channel of a 4-channel buffer
// is carried over since JPEG drops it.
func degrade(buf *raster.Buffer, quality int) (*raster.Buffer, error) {
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, buf.Image(), &jpeg.Options{Quality: quality}); err != nil {
		return nil, &EncodingError{Op: "encode", Err: err}
	}

	img, err := jpeg.Decode(&enc)
	if err != nil {
		return nil, &EncodingError{Op: "decode", Err: err}
	}

	dec, err := raster.FromImage(img)
	if err != nil {
		return nil, &EncodingError{Op: "convert", Err: err}
	}

	out, err := raster.New(buf.Width(), buf.Height(), buf.Channels())
	if err != nil {
		return nil, &EncodingError{Op: "convert", Err: err}
	}

	w, h := buf.Width(), buf.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := dec.PixOffset(x, y)
			di := out.PixOffset(x, y)
			out.Pix[di+chanRed] = dec.Pix[si+chanRed]
			out.Pix[di+chanGreen] = dec.Pix[si+chanGreen]
			out.Pix[di+chanBlue] = dec.Pix[si+chanBlue]
			if out.Channels() == raster.RGBA {
				out.Pix[di+3] = buf.Pix[buf.PixOffset(x, y)+3]
			}
		}
	}
	return out, nil
}
