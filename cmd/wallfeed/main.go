package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/moolex/wallhaven-go/api"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"glitcher/pkg/glitch"
	"glitcher/pkg/studio"
)

var out = flag.StringP("out", "o", ".", "output dir")
var cacheDir = flag.String("cache", "", "render cache dir")
var saveDir = flag.String("save", "", "keep downloaded originals here")
var tmpDir = flag.String("tmp", os.TempDir(), "scratch dir for bot photos")
var preset = flag.String("preset", "vhs", "glitch preset name")
var seed = flag.Int64("seed", 1, "base random seed")
var interval = flag.String("interval", "5m", "render interval")
var debug = flag.Bool("debug", false, "set debug")
var whKey = flag.String("wh-key", "", "wallhaven api key")
var whQuery = flag.String("wh-query", "", "wallhaven query string")
var whCategory = flag.String("wh-category", "", "wallhaven category names")
var whPurity = flag.String("wh-purity", "", "wallhaven purity levels")
var whRandom = flag.Bool("wh-random", false, "wallhaven random sort")
var whSorting = flag.String("wh-sorting", "", "wallhaven sorting type")
var whToplist = flag.String("wh-toplist", "1M", "wallhaven toplist range")
var whRatio = flag.String("wh-ratio", "", "wallhaven ratio filter")
var tgToken = flag.String("tg-token", "", "telegram bot token")

func main() {
	flag.Parse()

	gp, ok := glitch.Preset(*preset)
	if !ok {
		log.Fatalf("unknown preset %q, try: %s", *preset, strings.Join(glitch.PresetNames(), ", "))
	}

	p := studio.NewParams(gp, *seed)

	if d, err := time.ParseDuration(*interval); err != nil {
		log.Fatal(err)
	} else {
		p.ChangeWait = d
	}

	logger, _ := zap.NewDevelopment()

	wh := api.New(*whKey)
	wh.SetLogger(logger)
	if *debug {
		wh.SetDebug()
	}
	p.SetAPI(wh)

	{
		q := api.NewQuery(*whQuery)
		if *whCategory != "" {
			q.SetCategory(strings.Split(*whCategory, ",")...)
		}
		if *whPurity != "" {
			q.SetPurity(strings.Split(*whPurity, ",")...)
		}
		if *whRatio != "" {
			q.SetRatio(*whRatio)
		}
		if *whRandom {
			q.Random()
		} else if *whSorting != "" {
			q.SortBy(*whSorting)
		} else {
			q.SortBy(api.SortTopList)
			q.TopRange = *whToplist
		}
		p.SetQuery(q)
	}

	outFs, err := studio.NewDirFs(*out)
	if err != nil {
		log.Fatal(err)
	}

	dl, err := studio.NewDownloader(*saveDir, logger)
	if err != nil {
		log.Fatal(err)
	}

	cache, err := studio.NewCache(*cacheDir)
	if err != nil {
		log.Fatal(err)
	}

	tmp, err := studio.NewTmpFs(*tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	history := studio.NewHistory()
	eff := glitch.New()

	var bot *studio.Bot
	if *tgToken != "" {
		var botErr error
		bot, botErr = studio.NewBot(*tgToken, eff, p, tmp, history)
		if botErr != nil {
			log.Fatal(botErr)
		}
		bot.Start()
	}

	if ret, err := wh.Query(p.GetQuery()); err != nil {
		log.Fatal(err)
	} else {
		p.SetResult(ret)
	}

	shutdown := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		timer := time.NewTimer(time.Nanosecond)

		defer func() {
			timer.Stop()
			if bot != nil {
				bot.Stop()
			}
			exited <- struct{}{}
		}()

		feed := studio.NewFeed(eff, p, dl, cache, outFs, history, logger)
		wakeupChan := p.WakeupChan()

		for {
			select {
			case <-shutdown:
				return
			case <-wakeupChan:
				timer.Reset(time.Millisecond)
				continue
			case <-timer.C:
				if p.Paused() {
					logger.Info("feed paused, skip...")
					continue
				}
				if err := feed.Render(); err != nil {
					logger.With(zap.Error(err)).Info("render failed")
					timer.Reset(p.ErrorWait)
				} else {
					timer.Reset(p.ChangeWait)
				}
			}
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	<-signals
	logger.Info("shutting down")
	shutdown <- struct{}{}
	<-exited
	logger.Info("exited")
}
