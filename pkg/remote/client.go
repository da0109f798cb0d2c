package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"glitcher/pkg/glitch"
	"glitcher/pkg/proc"
)

func New(addr string) (proc.Processor, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Glitch(img image.Image, p glitch.Params, seed int64) (image.Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	var resp GlitchResponse
	if err := c.rpc.Call("Service.Glitch", &GlitchRequest{
		Image:  buf.Bytes(),
		Params: p,
		Seed:   seed,
	}, &resp); err != nil {
		return nil, err
	}

	return png.Decode(bytes.NewBuffer(resp.Image))
}
