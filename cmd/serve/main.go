package main

import (
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"

	"glitcher/pkg/glitch"
	"glitcher/pkg/proc"
	"glitcher/pkg/remote"
)

var listen = flag.String("listen", ":9123", "listen addr")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (proc.Processor, *http.Server) {
				return glitch.New(),
					&http.Server{Addr: *listen}
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
