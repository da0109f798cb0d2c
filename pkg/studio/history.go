package studio

import (
	"image"

	"github.com/samber/lo"

	"glitcher/pkg/glitch"
)

func NewHistory() *History {
	return &History{max: 3}
}

// History remembers the last few renders for the bot's /info, /logs and
// /prev commands.
type History struct {
	max   int
	items []*RenderLog
}

type RenderLog struct {
	Source string
	Size   int
	Params glitch.Params
	Seed   int64
	Output image.Image
}

func (h *History) push(item *RenderLog) {
	h.items = append(h.items, item)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Logs() []*RenderLog {
	return h.items
}

func (h *History) Add(source string, size int, p glitch.Params, seed int64, out image.Image) {
	h.push(&RenderLog{Source: source, Size: size, Params: p, Seed: seed, Output: out})
}

func (h *History) Push(item *RenderLog) {
	h.push(item)
}

func (h *History) Curr() *RenderLog {
	log, _ := lo.Last(h.items)
	return log
}

func (h *History) Prev() *RenderLog {
	log, _ := lo.Nth(h.items, -2)
	return log
}
