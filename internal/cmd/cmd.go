// Package cmd is the regiond entry point.  It contains the environment
// configuration utilities, signal processing logic, and so on.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/AdguardTeam/golibs/contextutil"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/golibs/service"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/ipregion/regiond/internal/errcoll"
	"github.com/ipregion/regiond/internal/metrics"
	"github.com/ipregion/regiond/internal/rangedb"
	"github.com/ipregion/regiond/internal/version"
	"github.com/ipregion/regiond/internal/websvc"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sys/unix"
)

// shutdownTimeout is the default shutdown timeout for all services.
const shutdownTimeout = 5 * time.Second

// Main is the entry point of application.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)

	envs := errors.Must(parseEnvironment())
	errors.Check(envs.Validate())

	baseLogger := envs.buildLogger()

	mainLogger := baseLogger.With(slogutil.KeyPrefix, "main")

	// Signal service startup now that we have the logs set up.
	mainLogger.InfoContext(
		ctx,
		"regiond starting",
		"version", version.Version(),
		"revision", version.Revision(),
		"commit_time", version.CommitTime(),
	)

	errColl := errors.Must(envs.buildErrColl(baseLogger))

	defer reportPanics(ctx, errColl, mainLogger)

	sigHdlr := service.NewSignalHandler(&service.SignalHandlerConfig{
		Logger:          baseLogger.With(slogutil.KeyPrefix, service.SignalHandlerPrefix),
		ShutdownTimeout: shutdownTimeout,
	})

	mtrc := errors.Must(metrics.NewRangeDB(metrics.Namespace(), prometheus.DefaultRegisterer))

	// The policy has already been validated along with the rest of the
	// environment.
	policy := errors.Must(rangedb.NewRefreshPolicy(envs.RefreshPolicy))

	rangesTimeout := time.Duration(envs.RangesTimeout)
	db := rangedb.New(&rangedb.Config{
		Logger:        baseLogger.With(slogutil.KeyPrefix, "rangedb"),
		ErrColl:       errColl,
		Metrics:       mtrc,
		URL:           &envs.RangesURL.URL,
		ServiceFilter: envs.ServiceFilter,
		Policy:        policy,
		Timeout:       rangesTimeout,
	})

	if policy != rangedb.RefreshPolicyPerQuery {
		refreshInitial(ctx, mainLogger, db, rangesTimeout)
	}

	if policy == rangedb.RefreshPolicyPeriodic {
		refr := service.NewRefreshWorker(&service.RefreshWorkerConfig{
			ContextConstructor: contextutil.NewTimeoutConstructor(rangesTimeout),
			ErrorHandler:       newSlogErrorHandler(baseLogger, "rangedb_refresh"),
			Refresher:          db,
			Schedule:           timeutil.NewConstSchedule(time.Duration(envs.RefreshIvl)),
			RefreshOnShutdown:  false,
		})

		errors.Check(refr.Start(context.WithoutCancel(ctx)))

		sigHdlr.AddService(refr)
	}

	addr := netutil.JoinHostPort(envs.ListenAddr.String(), envs.ListenPort)

	pprofAddr := ""
	if envs.PprofEnabled {
		pprofAddr = addr
	}

	web := websvc.New(&websvc.Config{
		Logger:   baseLogger.With(slogutil.KeyPrefix, "websvc"),
		Resolver: db,
		Refreshers: websvc.Refreshers{
			"ranges": db,
		},
		APIAddr:        addr,
		PprofAddr:      pprofAddr,
		PrometheusAddr: addr,
	})

	errors.Check(web.Start(context.WithoutCancel(ctx)))

	sigHdlr.AddService(web)

	mainLogger.InfoContext(ctx, "regiond started", "addr", addr)

	// Unregister the signal behavior for ctx.
	stop()
	ctx = context.WithoutCancel(ctx)

	code := sigHdlr.Handle(ctx)
	flushErrColl(errColl)

	os.Exit(code)
}

// refreshInitial performs the initial fetch of the range registry.  A failed
// initial fetch is logged but doesn't prevent the service from starting, so
// that a registry outage during a restart doesn't take the resolver down with
// it.
func refreshInitial(
	ctx context.Context,
	l *slog.Logger,
	db *rangedb.Default,
	timeout time.Duration,
) {
	refrCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := db.Refresh(refrCtx)
	if err != nil {
		l.WarnContext(ctx, "initial ranges refresh", slogutil.KeyError, err)
	}
}

// newSlogErrorHandler is a convenient wrapper around
// [service.NewSlogErrorHandler].
func newSlogErrorHandler(baseLogger *slog.Logger, prefix string) (h *service.SlogErrorHandler) {
	return service.NewSlogErrorHandler(
		baseLogger.With(slogutil.KeyPrefix, prefix),
		slog.LevelError,
		"refreshing",
	)
}

// reportPanics reports all panics in Main using the Sentry client and prints
// them to the log.  It should be called in a defer.
func reportPanics(ctx context.Context, errColl errcoll.Interface, l *slog.Logger) {
	err := errors.FromRecovered(recover())
	if err == nil {
		return
	}

	errcoll.Collect(ctx, errColl, l, "panic in main", err)
	slogutil.PrintStack(ctx, l, slog.LevelError)

	// Flush before exiting, since os.Exit skips the remaining defers and
	// buffered reports would be lost otherwise.
	flushErrColl(errColl)

	os.Exit(osutil.ExitCodeFailure)
}

// flushErrColl flushes errColl if it buffers its reports before sending them.
func flushErrColl(errColl errcoll.Interface) {
	if fc, ok := errColl.(errcoll.ErrorFlushCollector); ok {
		fc.Flush()
	}
}
