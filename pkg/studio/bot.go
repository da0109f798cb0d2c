package studio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/moolex/wallhaven-go/api"
	"github.com/samber/lo"
	tele "gopkg.in/telebot.v3"

	"glitcher/pkg/glitch"
	"glitcher/pkg/proc"
)

func NewBot(token string, p proc.Processor, params *Params, tmp *TmpFs, h *History) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:      b,
		proc:   p,
		params: params,
		tmp:    tmp,
		h:      h,
	}, nil
}

// Bot remote-controls the wallfeed daemon and glitches any photo sent to it.
type Bot struct {
	b      *tele.Bot
	proc   proc.Processor
	params *Params
	tmp    *TmpFs
	h      *History
}

func (b *Bot) handleBase() {
	b.b.Handle("/pause", func(context tele.Context) error {
		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		b.params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/interval", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(b.params.ChangeWait.String())
		}

		duration, err := time.ParseDuration(in)
		if err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		b.params.ChangeWait = duration
		b.params.Wakeup()
		return context.Reply("OK")
	})
}

func (b *Bot) handleConfig() {
	b.b.Handle("/preset", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(strings.Join(glitch.PresetNames(), ", "))
		}

		p, ok := glitch.Preset(in)
		if !ok {
			return context.Reply(fmt.Sprintf("unknown preset, try: %s", strings.Join(glitch.PresetNames(), ", ")))
		}

		b.params.SetGlitch(p)
		b.params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/seed", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(strconv.FormatInt(b.params.Seed(), 10))
		}

		seed, err := strconv.ParseInt(in, 10, 64)
		if err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		b.params.SetSeed(seed)
		return context.Reply("OK")
	})

	b.b.Handle("/quality", func(context tele.Context) error {
		in := context.Message().Payload
		p := b.params.GetGlitch()
		if in == "" {
			return context.Reply(strconv.Itoa(p.Quality))
		}

		q, err := strconv.Atoi(in)
		if err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		p.Quality = q
		if err := p.Validate(); err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		b.params.SetGlitch(p)
		return context.Reply("OK")
	})
}

func (b *Bot) handleQuery() {
	updateQuery := func(up func(q *api.QueryCond), ctx tele.Context) error {
		b.params.UpdateQuery(func(q *api.QueryCond) {
			q.Page = 1
			up(q)
		})

		if err := b.params.Querying(); err != nil {
			return ctx.Reply(fmt.Sprintf("update failed: %s", err))
		}

		r := b.params.GetResult()
		return ctx.Reply(fmt.Sprintf("Updated, items: %d, page: %d/%d", r.Meta.Total, r.Meta.CurrentPage, r.Meta.LastPage))
	}

	b.b.Handle("/query", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			q.Query = context.Message().Payload
			q.SortBy(api.SortViews)
		}, context)
	})

	b.b.Handle("/toplist", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			q.SortBy(api.SortTopList)
			q.TopRange = context.Message().Payload
		}, context)
	})

	b.b.Handle("/page", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			p, e := strconv.Atoi(context.Message().Payload)
			q.Page = lo.Ternary(e == nil, p, 1)
		}, context)
	})
}

func (b *Bot) handleAction() {
	b.b.Handle("/info", func(context tele.Context) error {
		log := b.h.Curr()
		if log == nil {
			return context.Reply("Nothing rendered yet")
		}

		lines := []string{
			fmt.Sprintf("Source: %s", log.Source),
			fmt.Sprintf("Original size: %s", bytesize.New(float64(log.Size)).String()),
			fmt.Sprintf("Shift: %d @ %g deg", log.Params.ShiftIntensity, log.Params.ShiftAngle),
			fmt.Sprintf("Bands: %d rows @ p=%g", log.Params.BandWidth, log.Params.Probability),
			fmt.Sprintf("Quality: %d", log.Params.Quality),
			fmt.Sprintf("Seed: %d", log.Seed),
		}

		return context.Reply(strings.Join(lines, "\n"))
	})

	b.b.Handle("/logs", func(context tele.Context) error {
		var lines []string
		for _, log := range b.h.Logs() {
			lines = append(lines, fmt.Sprintf("%s (seed %d)", log.Source, log.Seed))
		}

		return context.Reply(strings.Join(lines, "\n"))
	})

	b.b.Handle(tele.OnPhoto, func(context tele.Context) error {
		photo := context.Message().Photo
		if photo == nil {
			return context.Reply("no photo attached")
		}

		src := b.tmp.NewFile()
		if src == "" {
			return context.Reply("no tmpdir configured")
		}

		if err := b.b.Download(&photo.File, src); err != nil {
			return context.Reply(fmt.Sprintf("download failed: %s", err))
		}

		img, err := imaging.Open(src)
		if err != nil {
			return context.Reply(fmt.Sprintf("decode failed: %s", err))
		}

		p := b.params.GetGlitch()
		seed := b.params.NextSeed()

		res, err := b.proc.Glitch(img, p, seed)
		if err != nil {
			return context.Reply(fmt.Sprintf("glitch failed: %s", err))
		}

		out := b.tmp.NewFile() + ".png"
		if err := imaging.Save(res, out); err != nil {
			return context.Reply(fmt.Sprintf("save failed: %s", err))
		}

		b.h.Add("telegram photo", int(photo.FileSize), p, seed, res)
		return context.Reply(&tele.Photo{File: tele.FromDisk(out)})
	})
}

func (b *Bot) Start() {
	b.handleBase()
	b.handleConfig()
	b.handleQuery()
	b.handleAction()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}
