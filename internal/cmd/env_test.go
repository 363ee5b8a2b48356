package cmd

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/netutil/urlutil"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/stretchr/testify/assert"
)

// newTestEnvironment returns an environment with all values valid.
func newTestEnvironment() (envs *environment) {
	return &environment{
		RangesURL: &urlutil.URL{URL: url.URL{
			Scheme: "https",
			Host:   "ip-ranges.example.com",
			Path:   "/ip-ranges.json",
		}},
		LogFormat:     "text",
		RefreshPolicy: "periodic",
		SentryDSN:     "stderr",
		ListenAddr:    net.IPv4(127, 0, 0, 1),
		RangesTimeout: timeutil.Duration(1 * time.Minute),
		RefreshIvl:    timeutil.Duration(1 * time.Hour),
		ListenPort:    8181,
	}
}

func TestEnvironment_Validate(t *testing.T) {
	testCases := []struct {
		mutate      func(envs *environment)
		name        string
		wantErrLike string
	}{{
		mutate:      func(_ *environment) {},
		name:        "ok",
		wantErrLike: "",
	}, {
		mutate:      func(envs *environment) { envs.ListenAddr = nil },
		name:        "no_listen_addr",
		wantErrLike: "LISTEN_ADDR",
	}, {
		mutate:      func(envs *environment) { envs.RangesURL = nil },
		name:        "no_ranges_url",
		wantErrLike: "RANGES_URL",
	}, {
		mutate: func(envs *environment) {
			envs.RangesURL.Scheme = "ftp"
		},
		name:        "bad_ranges_url_scheme",
		wantErrLike: "RANGES_URL",
	}, {
		mutate:      func(envs *environment) { envs.RangesTimeout = 0 },
		name:        "no_ranges_timeout",
		wantErrLike: "RANGES_TIMEOUT",
	}, {
		mutate:      func(envs *environment) { envs.RefreshPolicy = "sometimes" },
		name:        "bad_refresh_policy",
		wantErrLike: "REFRESH_POLICY",
	}, {
		mutate:      func(envs *environment) { envs.RefreshIvl = 0 },
		name:        "periodic_needs_interval",
		wantErrLike: "REFRESH_INTERVAL",
	}, {
		mutate: func(envs *environment) {
			envs.RefreshPolicy = "startup"
			envs.RefreshIvl = 0
		},
		name:        "startup_needs_no_interval",
		wantErrLike: "",
	}, {
		mutate:      func(envs *environment) { envs.LogFormat = "xml" },
		name:        "bad_log_format",
		wantErrLike: "LOG_FORMAT",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			envs := newTestEnvironment()
			tc.mutate(envs)

			err := envs.Validate()
			if tc.wantErrLike == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErrLike)
			}
		})
	}
}

func TestStrictBool_UnmarshalText(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    strictBool
		wantErr bool
	}{{
		name:    "zero",
		in:      "0",
		want:    false,
		wantErr: false,
	}, {
		name:    "one",
		in:      "1",
		want:    true,
		wantErr: false,
	}, {
		name:    "true",
		in:      "true",
		wantErr: true,
	}, {
		name:    "empty",
		in:      "",
		wantErr: true,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var sb strictBool
			err := sb.UnmarshalText([]byte(tc.in))
			if tc.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, sb)
		})
	}
}
