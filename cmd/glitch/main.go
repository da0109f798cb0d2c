package main

import (
	"bytes"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"glitcher/pkg/glitch"
	"glitcher/pkg/proc"
	"glitcher/pkg/remote"
	"glitcher/pkg/studio"
)

var shift = flag.IntP("shift", "s", 10, "shift intensity in pixels (0-50)")
var angle = flag.Float64P("angle", "a", 0, "shift angle in degrees (-90..90)")
var width = flag.IntP("width", "w", 3, "band width in rows (1-10)")
var probability = flag.Float64P("probability", "p", 0.8, "band glitch probability (0-1)")
var quality = flag.IntP("quality", "q", 30, "recompression quality (1-95)")
var preset = flag.String("preset", "", "preset name (subtle, vhs, datamosh, extreme)")
var seed = flag.Int64("seed", 1, "random seed")
var out = flag.StringP("out", "o", ".", "output dir")
var workers = flag.Int("workers", 4, "batch workers")
var remoteAddr = flag.String("remote", "", "render via remote service addr")
var fit = flag.Int("fit", 0, "bound images into a pixel box before glitching")
var saveDir = flag.String("save", "", "keep downloaded originals here")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	if len(flag.Args()) == 0 {
		log.Fatal("usage: glitch [flags] <file|dir|url>...")
	}

	var logger *zap.Logger
	if *debug {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}

	params := glitch.DefaultParams()
	if *preset != "" {
		var ok bool
		if params, ok = glitch.Preset(*preset); !ok {
			log.Fatalf("unknown preset %q, try: %s", *preset, strings.Join(glitch.PresetNames(), ", "))
		}
	} else {
		params.ShiftIntensity = *shift
		params.ShiftAngle = *angle
		params.BandWidth = *width
		params.Probability = *probability
		params.Quality = *quality
	}

	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	var p proc.Processor
	var procErr error

	if strings.Contains(*remoteAddr, ":") {
		p, procErr = remote.New(*remoteAddr)
	} else {
		p = glitch.New()
	}

	if procErr != nil {
		log.Fatal(procErr)
	}

	outFs, err := studio.NewDirFs(*out)
	if err != nil {
		log.Fatal(err)
	}

	dl, err := studio.NewDownloader(*saveDir, logger)
	if err != nil {
		log.Fatal(err)
	}

	runner := studio.NewRunner(p, logger, studio.WithWorkers(*workers), studio.WithFit(*fit))

	for _, arg := range flag.Args() {
		switch {
		case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
			bs, err := dl.Fetch(arg)
			if err != nil {
				logger.With(zap.String("url", arg), zap.Error(err)).Info("download failed")
				continue
			}

			img, err := imaging.Decode(bytes.NewReader(bs))
			if err != nil {
				logger.With(zap.String("url", arg), zap.Error(err)).Info("decode failed")
				continue
			}

			if *fit > 0 {
				img = imaging.Fit(img, *fit, *fit, imaging.Lanczos)
			}

			writeOne(p, img, dl.Filename(arg), params, logger)

		default:
			info, err := os.Stat(arg)
			if err != nil {
				logger.With(zap.String("path", arg), zap.Error(err)).Info("stat failed")
				continue
			}

			if info.IsDir() {
				inFs, err := studio.NewDirFs(arg)
				if err != nil {
					logger.With(zap.String("path", arg), zap.Error(err)).Info("open dir failed")
					continue
				}

				n, err := runner.Run(inFs, outFs, params, *seed)
				if err != nil {
					logger.With(zap.String("path", arg), zap.Error(err)).Info("batch failed")
					continue
				}
				logger.With(zap.String("path", arg), zap.Int("rendered", n)).Info("batch done")
				continue
			}

			img, err := imaging.Open(arg)
			if err != nil {
				logger.With(zap.String("path", arg), zap.Error(err)).Info("open failed")
				continue
			}

			if *fit > 0 {
				img = imaging.Fit(img, *fit, *fit, imaging.Lanczos)
			}

			writeOne(p, img, filepath.Base(arg), params, logger)
		}
	}
}

func writeOne(p proc.Processor, img image.Image, name string, params glitch.Params, logger *zap.Logger) {
	res, err := p.Glitch(img, params, *seed)
	if err != nil {
		logger.With(zap.String("file", name), zap.Error(err)).Info("glitch failed")
		return
	}

	outName := studio.OutputName(name)

	format, err := imaging.FormatFromFilename(outName)
	if err != nil {
		format = imaging.PNG
		outName += ".png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, res, format); err != nil {
		logger.With(zap.String("file", outName), zap.Error(err)).Info("encode failed")
		return
	}

	outPath := filepath.Join(*out, outName)
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		logger.With(zap.String("file", outPath), zap.Error(err)).Info("write failed")
		return
	}

	logger.With(
		zap.String("file", outPath),
		zap.String("size", bytesize.New(float64(buf.Len())).String()),
		zap.Int64("seed", *seed),
	).Info("rendered")
}
