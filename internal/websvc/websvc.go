// Package websvc contains the HTTP API of regiond.  It serves the region
// resolution endpoint as well as prometheus metrics, pprof, health check, and
// debug refresh endpoints.
package websvc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil/httputil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/golibs/service"
	"github.com/ipregion/regiond/internal/rangedb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the HTTP service of regiond.
type Service struct {
	log      *slog.Logger
	resolver rangedb.Interface
	refrHdlr *refreshHandler
	servers  map[string]*server
}

// Config is the regiond HTTP service configuration structure.
type Config struct {
	// Logger is used for logging the operation of the HTTP service.
	Logger *slog.Logger

	// Resolver is used to serve the region resolution endpoint.
	Resolver rangedb.Interface

	// Refreshers are the entities that can be refreshed through the debug
	// refresh endpoint.
	Refreshers Refreshers

	// APIAddr is the address of the region API, health check, and debug
	// endpoints.
	APIAddr string

	// PprofAddr is the address of the pprof endpoints.
	PprofAddr string

	// PrometheusAddr is the address of the prometheus metrics endpoint.
	PrometheusAddr string
}

// New returns a new properly initialized *Service.  c must not be nil.
func New(c *Config) (svc *Service) {
	svc = &Service{
		log:      c.Logger,
		resolver: c.Resolver,
		refrHdlr: &refreshHandler{
			refrs: c.Refreshers,
		},
		servers: make(map[string]*server),
	}

	svc.addServer(c.PrometheusAddr, "prometheus")
	svc.addServer(c.PprofAddr, "pprof")

	// The region API and health-check server causes panic if it doesn't
	// start because the server is needed to serve lookups.
	svc.addServer(c.APIAddr, "api")

	return svc
}

// server is a single server within the regiond HTTP service.
type server struct {
	http *http.Server
	name string
}

// startServer starts one server and panics if there is an unexpected error.
func startServer(ctx context.Context, l *slog.Logger, s *server) {
	defer recoverAndExit(ctx, l)

	l.InfoContext(ctx, "listening", "name", s.name, "addr", s.http.Addr)

	srv := s.http
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		panic(fmt.Errorf("%s: failed listen on %s: %s", srv.Addr, s.name, err))
	}
}

// recoverAndExit recovers a panic, logs it using l, and then exits with
// [osutil.ExitCodeFailure].
func recoverAndExit(ctx context.Context, l *slog.Logger) {
	v := recover()
	if v == nil {
		return
	}

	var args []any
	if err, ok := v.(error); ok {
		args = []any{slogutil.KeyError, err}
	} else {
		args = []any{"value", v}
	}

	l.ErrorContext(ctx, "recovered from panic", args...)
	slogutil.PrintStack(ctx, l, slog.LevelError)

	os.Exit(osutil.ExitCodeFailure)
}

// type check
var _ service.Interface = (*Service)(nil)

// Start implements the [service.Interface] interface for *Service.  It starts
// serving all endpoints but does not wait for them to actually go online.
// err is always nil, if any endpoint fails to start, it panics.
func (svc *Service) Start(ctx context.Context) (err error) {
	for _, srv := range svc.servers {
		go startServer(ctx, svc.log, srv)
	}

	return nil
}

// Shutdown implements the [service.Interface] interface for *Service.  It
// stops serving all endpoints.
func (svc *Service) Shutdown(ctx context.Context) (err error) {
	srvNum := 0
	for _, srv := range svc.servers {
		err = srv.http.Shutdown(ctx)
		if err != nil {
			return fmt.Errorf("server %s shutdown: %w", srv.name, err)
		}

		srvNum++

		svc.log.InfoContext(ctx, "server is shutdown", "name", srv.name)
	}

	svc.log.InfoContext(ctx, "all servers shutdown", "num", srvNum)

	return nil
}

// addServer adds the named handler to the service, creating a new server
// listening on a different address if necessary.  If addr is empty, the
// server isn't created.
func (svc *Service) addServer(addr, name string) {
	if addr == "" {
		return
	}

	var mux *http.ServeMux

	srv, ok := svc.servers[addr]
	if !ok {
		mux = http.NewServeMux()
		svc.addHandler(name, mux)

		svc.servers[addr] = &server{
			// #nosec G112 -- Do not set the timeouts, since pprof and similar
			// debug APIs may be busy for a long time.
			http: &http.Server{
				Addr:     addr,
				Handler:  mux,
				ErrorLog: slog.NewLogLogger(svc.log.Handler(), slog.LevelDebug),
			},
			name: name,
		}

		return
	}

	mux = srv.http.Handler.(*http.ServeMux)
	svc.addHandler(name, mux)
	srv.name += ";" + name
}

// addHandler routes the handlers of the named endpoint group to mux.
func (svc *Service) addHandler(serviceName string, mux *http.ServeMux) {
	switch serviceName {
	case "api":
		svc.apiMux(mux)
	case "pprof":
		httputil.RoutePprof(mux)
	case "prometheus":
		svc.promMux(mux)
	default:
		panic(fmt.Errorf("websvc: could not find mux for service %q", serviceName))
	}
}

// apiMux adds the region API, health-check, and debug refresh handlers to
// mux.
func (svc *Service) apiMux(mux *http.ServeMux) {
	mux.Handle("GET /v1/region", svc.middleware(
		http.HandlerFunc(svc.serveRegion),
		slog.LevelDebug,
	))
	mux.Handle("GET /v1/regions", svc.middleware(
		http.HandlerFunc(svc.serveRegions),
		slog.LevelDebug,
	))
	mux.Handle("GET /health-check", svc.middleware(
		http.HandlerFunc(serveHealthCheck),
		slog.LevelDebug,
	))
	mux.Handle("POST /debug/api/refresh", svc.middleware(svc.refrHdlr, slog.LevelInfo))
}

// promMux adds the prometheus service handler to mux.
func (svc *Service) promMux(mux *http.ServeMux) {
	mux.Handle("GET /metrics", svc.middleware(promhttp.Handler(), slog.LevelDebug))
}
