package studio

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/moolex/wallhaven-go/api"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"glitcher/pkg/proc"
)

func NewFeed(p proc.Processor, params *Params, dl *Downloader, cache *Cache, out afero.Fs, h *History, logger *zap.Logger) *Feed {
	return &Feed{
		proc:    p,
		params:  params,
		dl:      dl,
		cache:   cache,
		out:     out,
		history: h,
		logger:  logger,
	}
}

// Feed pulls wallpapers from the wallhaven result set, glitches them and
// writes the renders to the output dir. One Render call is one wallpaper.
type Feed struct {
	proc    proc.Processor
	params  *Params
	dl      *Downloader
	cache   *Cache
	out     afero.Fs
	history *History
	logger  *zap.Logger
}

func (f *Feed) pick() (*api.Wallpaper, error) {
	wp, err := f.params.GetResult().Pick(api.PickLoop, api.PickRand)
	if err != nil {
		if errors.Is(err, api.ErrNoMoreItems) {
			f.params.UpdateQuery(func(q *api.QueryCond) { q.Page = 1 })
		}
		return nil, fmt.Errorf("get wallpaper failed: %w", err)
	}
	return wp, nil
}

func (f *Feed) Render() error {
	wp, err := f.pick()
	if err != nil {
		return err
	}

	p := f.params.GetGlitch()
	seed := f.params.NextSeed()

	exists, cached, err := f.cache.Load(wp.Id, p, seed)
	if err != nil {
		return fmt.Errorf("load cache failed: %w", err)
	}

	if exists {
		f.history.Add(wp.Url, 0, p, seed, cached)
		return f.save(wp.Id, cached)
	}

	origin, err := f.dl.Fetch(wp.Path)
	if err != nil {
		return fmt.Errorf("download image failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(origin))
	if err != nil {
		return fmt.Errorf("image decode failed: %w", err)
	}

	res, err := f.proc.Glitch(img, p, seed)
	if err != nil {
		return fmt.Errorf("glitch failed: %w", err)
	}

	if err := f.cache.Store(wp.Id, p, seed, res); err != nil {
		return fmt.Errorf("save cache failed: %w", err)
	}

	f.history.Add(wp.Url, len(origin), p, seed, res)
	f.logger.With(zap.String("id", wp.Id), zap.Int64("seed", seed)).Debug("rendered")

	return f.save(wp.Id, res)
}

func (f *Feed) save(id string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	return afero.WriteFile(f.out, fmt.Sprintf("%s_glitched.png", id), buf.Bytes(), 0644)
}
