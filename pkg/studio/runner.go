package studio

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"glitcher/pkg/glitch"
	"glitcher/pkg/proc"
)

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff"}

func NewRunner(p proc.Processor, logger *zap.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		proc:    p,
		log:     logger,
		workers: 1,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Runner glitches every image of a directory. Each file gets its own seed
// derived from the base seed and its position in the sorted listing, so a
// batch is reproducible and workers never share a random stream.
type Runner struct {
	proc    proc.Processor
	log     *zap.Logger
	workers int
	fit     int
}

type RunnerOption func(r *Runner)

func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithFit bounds each image into a px*px box before glitching.
func WithFit(px int) RunnerOption {
	return func(r *Runner) {
		r.fit = px
	}
}

// OutputName mirrors the input name with a _glitched suffix before the
// extension.
func OutputName(name string) string {
	ext := path.Ext(name)
	return fmt.Sprintf("%s_glitched%s", strings.TrimSuffix(name, ext), ext)
}

type job struct {
	idx  int
	name string
}

// Run processes every image in the root of in and writes results into out.
// A failed image is logged and skipped; the rendered count comes back.
func (r *Runner) Run(in, out afero.Fs, p glitch.Params, seed int64) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	infos, err := afero.ReadDir(in, ".")
	if err != nil {
		return 0, fmt.Errorf("list input failed: %w", err)
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if lo.Contains(imageExts, strings.ToLower(path.Ext(info.Name()))) {
			names = append(names, info.Name())
		}
	}

	if len(names) == 0 {
		return 0, nil
	}

	bar := progressbar.Default(int64(len(names)), "Glitching")

	jobs := make(chan job)
	var done int64
	var wg sync.WaitGroup

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := r.one(in, out, j.name, p, seed+int64(j.idx)); err != nil {
					r.log.With(zap.String("file", j.name), zap.Error(err)).Info("glitch failed")
				} else {
					atomic.AddInt64(&done, 1)
				}
				_ = bar.Add(1)
			}
		}()
	}

	for i, name := range names {
		jobs <- job{idx: i, name: name}
	}
	close(jobs)
	wg.Wait()

	return int(atomic.LoadInt64(&done)), nil
}

func (r *Runner) one(in, out afero.Fs, name string, p glitch.Params, seed int64) error {
	bs, err := afero.ReadFile(in, name)
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(bs))
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if r.fit > 0 {
		img = imaging.Fit(img, r.fit, r.fit, imaging.Lanczos)
	}

	res, err := r.proc.Glitch(img, p, seed)
	if err != nil {
		return fmt.Errorf("glitch failed: %w", err)
	}

	outName := OutputName(name)

	format, err := imaging.FormatFromFilename(outName)
	if err != nil {
		format = imaging.PNG
		outName += ".png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, res, format); err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	if err := afero.WriteFile(out, outName, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	r.log.With(
		zap.String("file", outName),
		zap.String("size", bytesize.New(float64(buf.Len())).String()),
		zap.Int64("seed", seed),
	).Debug("rendered")

	return nil
}
