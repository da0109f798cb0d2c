package studio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/afero"

	"glitcher/pkg/glitch"
)

func NewCache(dir string) (*Cache, error) {
	c := &Cache{}

	if dir == "" {
		return c, nil
	}

	if fs, err := newFs(dir); err != nil {
		return nil, fmt.Errorf("create cache failed: %w", err)
	} else {
		c.fs = fs
	}

	return c, nil
}

// Cache keeps finished renders keyed by source id plus the parameter and
// seed fingerprint, so rendering the same (image, params, seed) twice only
// pays once.
type Cache struct {
	fs afero.Fs
}

// Fingerprint is a compact directory name fully determined by the knobs
// that influence the output.
func Fingerprint(p glitch.Params, seed int64) string {
	return fmt.Sprintf("s%d-a%g-w%d-p%g-q%d-r%d",
		p.ShiftIntensity, p.ShiftAngle, p.BandWidth, p.Probability, p.Quality, seed)
}

func (c *Cache) filename(id string, p glitch.Params, seed int64) string {
	return fmt.Sprintf("%s/%s.png", Fingerprint(p, seed), id)
}

func (c *Cache) Load(id string, p glitch.Params, seed int64) (bool, image.Image, error) {
	if c.fs == nil {
		return false, nil, nil
	}

	bs, err := afero.ReadFile(c.fs, c.filename(id, p, seed))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		} else {
			return false, nil, err
		}
	}

	img, err := png.Decode(bytes.NewBuffer(bs))
	if err != nil {
		return false, nil, err
	}

	return true, img, nil
}

func (c *Cache) Store(id string, p glitch.Params, seed int64, img image.Image) error {
	if c.fs == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	dir := Fingerprint(p, seed)

	if exists, err := afero.DirExists(c.fs, dir); err != nil {
		return err
	} else if !exists {
		if err2 := c.fs.MkdirAll(dir, 0755); err2 != nil {
			return err2
		}
	}

	return afero.WriteFile(c.fs, c.filename(id, p, seed), buf.Bytes(), 0644)
}
