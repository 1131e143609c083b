package timeapi

import (
	"net/http"

	"github.com/rizesql/timeserver/internal/o11y/metrics"
	"github.com/rizesql/timeserver/internal/server"
)

// Routes lists every JSON route served for platform.
func Routes(platform *Platform) []server.Route {
	return []server.Route{
		&IndexRoute{},
		&TimeRoute{p: platform},
		&ISORoute{p: platform},
		&UnixRoute{p: platform},
		&HumanRoute{p: platform},
		&EnvelopeRoute{p: platform},
		&HealthRoute{},
	}
}

func Register(srv *server.Server, platform *Platform) {
	srv.RegisterAll(Routes(platform),
		server.WithLogging(platform.Logger),
		server.WithMetrics(),
	)
	srv.Mount(http.MethodGet, "/metrics", metrics.Handler())
}
