package studio

import (
	"sync"
	"time"

	"github.com/moolex/wallhaven-go/api"

	"glitcher/pkg/glitch"
)

func NewParams(p glitch.Params, seed int64) *Params {
	return &Params{
		ErrorWait:  3 * time.Second,
		ChangeWait: 5 * time.Minute,
		wakeup:     make(chan struct{}, 1),
		glitch:     p,
		seed:       seed,
	}
}

// Params is the mutable runtime state of the wallfeed daemon: the active
// glitch knobs, the rolling seed, and the wallhaven query/result pair.
type Params struct {
	l sync.RWMutex

	ErrorWait  time.Duration
	ChangeWait time.Duration

	wakeup chan struct{}
	paused bool
	glitch glitch.Params
	seed   int64
	api    *api.API
	q      *api.QueryCond
	r      *api.QueryResult
}

func (p *Params) Paused() bool {
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) Pause() {
	p.paused = true
}

func (p *Params) Wakeup() {
	p.paused = false
	p.wakeup <- struct{}{}
}

func (p *Params) SetAPI(api *api.API) {
	p.api = api
}

func (p *Params) GetGlitch() glitch.Params {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.glitch
}

func (p *Params) SetGlitch(g glitch.Params) {
	p.l.Lock()
	defer p.l.Unlock()
	p.glitch = g
}

func (p *Params) Seed() int64 {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.seed
}

func (p *Params) SetSeed(seed int64) {
	p.l.Lock()
	defer p.l.Unlock()
	p.seed = seed
}

// NextSeed returns the current seed and advances it, so every render of the
// feed gets its own deterministic stream.
func (p *Params) NextSeed() int64 {
	p.l.Lock()
	defer p.l.Unlock()
	s := p.seed
	p.seed++
	return s
}

func (p *Params) GetQuery() *api.QueryCond {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.q
}

func (p *Params) GetResult() *api.QueryResult {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.r
}

func (p *Params) SetQuery(q *api.QueryCond) {
	p.l.Lock()
	defer p.l.Unlock()
	p.q = q
}

func (p *Params) SetResult(r *api.QueryResult) {
	p.l.Lock()
	defer p.l.Unlock()
	p.r = r
}

func (p *Params) UpdateQuery(fn func(q *api.QueryCond)) {
	p.l.Lock()
	defer p.l.Unlock()
	fn(p.q)
}

func (p *Params) Querying() error {
	p.l.Lock()
	defer p.l.Unlock()

	ret, err := p.api.Query(p.q)
	if err != nil {
		return err
	}

	p.r = ret
	p.Wakeup()
	return nil
}
