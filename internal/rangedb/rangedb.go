// Package rangedb contains the in-memory database of the cloud provider's
// published IP address ranges and the longest-prefix matcher that resolves
// IPv4 addresses to the regions owning them.
package rangedb

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/AdguardTeam/golibs/service"
	"github.com/ipregion/regiond/internal/errcoll"
	"github.com/ipregion/regiond/internal/region"
	"github.com/ipregion/regiond/internal/rgdhttp"
	"golang.org/x/sync/singleflight"
)

// Interface is the interface for the region database.
type Interface interface {
	// ResolveRegion returns the human-readable name of the region that owns
	// the IPv4 address ip.  ok is false when ip does not belong to any
	// published range or is not a valid IPv4 address.
	ResolveRegion(ctx context.Context, ip string) (name string, ok bool)
}

// RefreshPolicy defines when the range database refetches the published
// registry.
type RefreshPolicy uint8

// RefreshPolicy values.
const (
	// RefreshPolicyPerQuery refetches the registry before every resolution.
	// Concurrent resolutions share a single in-flight fetch.
	RefreshPolicyPerQuery RefreshPolicy = iota + 1

	// RefreshPolicyOnceAtStartup fetches the registry once during the service
	// initialization and serves the same data for the process lifetime.
	RefreshPolicyOnceAtStartup

	// RefreshPolicyPeriodic fetches the registry once during the service
	// initialization and then again on a constant schedule.
	RefreshPolicyPeriodic
)

// NewRefreshPolicy parses the string representation of a refresh policy.
func NewRefreshPolicy(s string) (p RefreshPolicy, err error) {
	switch s {
	case "perquery":
		return RefreshPolicyPerQuery, nil
	case "startup":
		return RefreshPolicyOnceAtStartup, nil
	case "periodic":
		return RefreshPolicyPeriodic, nil
	default:
		return 0, fmt.Errorf("bad refresh policy %q", s)
	}
}

// Default is the default region database.  Under [RefreshPolicyOnceAtStartup]
// and [RefreshPolicyPeriodic] it should be initially refreshed before use.
type Default struct {
	logger    *slog.Logger
	errColl   errcoll.Interface
	metrics   Metrics
	http      *rgdhttp.Client
	url       *url.URL
	refrGroup *singleflight.Group

	// ranges holds the current immutable snapshot of the published records.
	// It is replaced wholesale by each successful refresh and retained
	// unchanged by a failed one.
	ranges atomic.Pointer[[]CIDRRecord]

	svcFilter string
	policy    RefreshPolicy
}

// Config is the configuration structure for the region database.  All fields
// must not be empty.
type Config struct {
	// Logger is used for logging the operation of the region database.
	Logger *slog.Logger

	// ErrColl is used to collect errors during refreshes.
	ErrColl errcoll.Interface

	// Metrics is used to collect the region database statistics.
	Metrics Metrics

	// URL is the URL of the published registry of IP address ranges.
	URL *url.URL

	// ServiceFilter, if non-empty, keeps only the registry entries whose
	// service field equals it.
	ServiceFilter string

	// Policy defines when the registry is refetched.
	Policy RefreshPolicy

	// Timeout is the timeout for registry queries.
	Timeout time.Duration
}

// New returns a properly initialized *Default.  c must not be nil.
func New(c *Config) (db *Default) {
	db = &Default{
		logger:  c.Logger,
		errColl: c.ErrColl,
		metrics: c.Metrics,
		http: rgdhttp.NewClient(&rgdhttp.ClientConfig{
			Timeout: c.Timeout,
		}),
		url:       c.URL,
		refrGroup: &singleflight.Group{},
		svcFilter: c.ServiceFilter,
		policy:    c.Policy,
	}

	db.ranges.Store(&[]CIDRRecord{})

	return db
}

// type check
var _ Interface = (*Default)(nil)

// ResolveRegion implements the [Interface] interface for *Default.  Invalid
// and IPv6 query addresses resolve to nothing, never to an error.
func (db *Default) ResolveRegion(ctx context.Context, ip string) (name string, ok bool) {
	if db.policy == RefreshPolicyPerQuery {
		// Refresh errors are reported and logged by the refresh itself, and
		// the previous data, if any, remain in place, so ignore the error
		// here.
		_ = db.Refresh(ctx)
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		db.metrics.IncrementLookups(ctx, false)

		return "", false
	}

	best, ok := db.match(ipv4ToUint32(addr))
	db.metrics.IncrementLookups(ctx, ok)
	if !ok {
		return "", false
	}

	return region.Name(best.Region), true
}

// match scans the current snapshot and returns the record of the most specific
// range containing the address q.  When several matching records share the
// greatest prefix length, the first one in registry document order wins.
func (db *Default) match(q uint32) (best CIDRRecord, ok bool) {
	for _, rec := range *db.ranges.Load() {
		if q&rec.Mask != rec.Network {
			continue
		}

		if !ok || rec.PrefixLen > best.PrefixLen {
			best, ok = rec, true
		}
	}

	return best, ok
}

// type check
var _ service.Refresher = (*Default)(nil)

// Refresh implements the [service.Refresher] interface for *Default.  At most
// one fetch-and-replace is in flight at any moment; concurrent calls share the
// result of the in-flight one.
func (db *Default) Refresh(ctx context.Context) (err error) {
	_, err, _ = db.refrGroup.Do("refresh", func() (_ any, refrErr error) {
		return nil, db.refresh(ctx)
	})

	return err
}
