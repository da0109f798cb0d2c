package remote

import (
	"bytes"
	"context"
	"image/png"
	"log"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"glitcher/pkg/proc"
)

func Proxy(p proc.Processor, srv *http.Server, lifecycle fx.Lifecycle) error {
	svc := &Service{proc: p}
	if err := rpc.Register(svc); err != nil {
		return err
	}

	rpc.HandleHTTP()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					log.Fatal(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	proc proc.Processor
}

func (s *Service) Glitch(req *GlitchRequest, resp *GlitchResponse) error {
	if len(req.Image) == 0 {
		return errors.New("empty image payload")
	}

	img, err := png.Decode(bytes.NewBuffer(req.Image))
	if err != nil {
		return errors.Wrap(err, "decode request")
	}

	out, err := s.proc.Glitch(img, req.Params, req.Seed)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return errors.Wrap(err, "encode response")
	}

	resp.Image = buf.Bytes()
	return nil
}
