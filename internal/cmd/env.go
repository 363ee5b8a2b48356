package cmd

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil/urlutil"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/caarlos0/env/v7"
	"github.com/getsentry/sentry-go"
	"github.com/ipregion/regiond/internal/errcoll"
	"github.com/ipregion/regiond/internal/rangedb"
	"github.com/ipregion/regiond/internal/version"
)

// environment represents the configuration that is kept in the environment.
type environment struct {
	RangesURL *urlutil.URL `env:"RANGES_URL" envDefault:"https://ip-ranges.amazonaws.com/ip-ranges.json"`

	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	RefreshPolicy string `env:"REFRESH_POLICY" envDefault:"periodic"`
	SentryDSN     string `env:"SENTRY_DSN" envDefault:"stderr"`
	ServiceFilter string `env:"SERVICE_FILTER"`

	ListenAddr net.IP `env:"LISTEN_ADDR" envDefault:"127.0.0.1"`

	RangesTimeout timeutil.Duration `env:"RANGES_TIMEOUT" envDefault:"1m"`
	RefreshIvl    timeutil.Duration `env:"REFRESH_INTERVAL" envDefault:"1h"`

	ListenPort uint16 `env:"LISTEN_PORT" envDefault:"8181"`

	Verbosity uint8 `env:"VERBOSE" envDefault:"0"`

	LogTimestamp strictBool `env:"LOG_TIMESTAMP" envDefault:"1"`
	PprofEnabled strictBool `env:"PPROF_ENABLED" envDefault:"0"`
}

// parseEnvironment reads the configuration.
func parseEnvironment() (envs *environment, err error) {
	envs = &environment{}
	err = env.Parse(envs)
	if err != nil {
		return nil, fmt.Errorf("parsing environments: %w", err)
	}

	return envs, nil
}

// type check
var _ validate.Interface = (*environment)(nil)

// Validate implements the [validate.Interface] interface for *environment.
func (envs *environment) Validate() (err error) {
	errs := []error{
		validate.Positive("RANGES_TIMEOUT", envs.RangesTimeout),
		validate.NotEmptySlice("LISTEN_ADDR", envs.ListenAddr),
	}

	if envs.RangesURL == nil {
		errs = append(errs, fmt.Errorf("RANGES_URL: %w", errors.ErrNoValue))
	} else if urlErr := urlutil.ValidateHTTPURL(&envs.RangesURL.URL); urlErr != nil {
		errs = append(errs, fmt.Errorf("RANGES_URL: %w", urlErr))
	}

	policy, err := rangedb.NewRefreshPolicy(envs.RefreshPolicy)
	if err != nil {
		errs = append(errs, fmt.Errorf("REFRESH_POLICY: %w", err))
	} else if policy == rangedb.RefreshPolicyPeriodic {
		errs = append(errs, validate.Positive("REFRESH_INTERVAL", envs.RefreshIvl))
	}

	_, err = slogutil.VerbosityToLevel(envs.Verbosity)
	if err != nil {
		errs = append(errs, fmt.Errorf("VERBOSE: %w", err))
	}

	_, err = slogutil.NewFormat(envs.LogFormat)
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}

	return errors.Join(errs...)
}

// buildLogger returns a logger built from the environment.  envs must be
// valid.
func (envs *environment) buildLogger() (baseLogger *slog.Logger) {
	lvl := errors.Must(slogutil.VerbosityToLevel(envs.Verbosity))

	return slogutil.New(&slogutil.Config{
		// Don't use [slogutil.NewFormat] here, because the value is validated.
		Format:       slogutil.Format(envs.LogFormat),
		AddTimestamp: bool(envs.LogTimestamp),
		Level:        lvl,
	})
}

// buildErrColl builds and returns an error collector from environment.
// baseLogger must not be nil.
func (envs *environment) buildErrColl(
	baseLogger *slog.Logger,
) (errColl errcoll.Interface, err error) {
	dsn := envs.SentryDSN
	if dsn == "stderr" {
		return errcoll.NewWriterErrorCollector(os.Stderr), nil
	}

	cli, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
		Release:          version.Version(),
	})
	if err != nil {
		return nil, err
	}

	l := baseLogger.With(slogutil.KeyPrefix, "sentry_errcoll")

	return errcoll.NewSentryErrorCollector(cli, l), nil
}

// strictBool is a type for booleans that are parsed from the environment more
// strictly than the usual bool.  It only accepts "0" and "1" as valid values.
type strictBool bool

// UnmarshalText implements the encoding.TextUnmarshaler interface for
// *strictBool.
func (sb *strictBool) UnmarshalText(b []byte) (err error) {
	if len(b) == 1 {
		switch b[0] {
		case '0':
			*sb = false

			return nil
		case '1':
			*sb = true

			return nil
		default:
			// Go on and return an error.
		}
	}

	return fmt.Errorf("invalid value %q, supported: %q, %q", b, "0", "1")
}
