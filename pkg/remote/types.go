package remote

import (
	"glitcher/pkg/glitch"
)

type GlitchRequest struct {
	Image  []byte // PNG encoded
	Params glitch.Params
	Seed   int64
}

type GlitchResponse struct {
	Image []byte // PNG encoded
}
