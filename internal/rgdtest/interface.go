package rgdtest

import (
	"context"

	"github.com/AdguardTeam/golibs/service"
	"github.com/ipregion/regiond/internal/errcoll"
	"github.com/ipregion/regiond/internal/rangedb"
)

// Interface Mocks
//
// Keep entities in alphabetic order.

// type check
var _ errcoll.Interface = (*ErrorCollector)(nil)

// ErrorCollector is an [errcoll.Interface] for tests.
type ErrorCollector struct {
	OnCollect func(ctx context.Context, err error)
}

// Collect implements the [errcoll.Interface] interface for *ErrorCollector.
func (c *ErrorCollector) Collect(ctx context.Context, err error) {
	c.OnCollect(ctx, err)
}

// type check
var _ rangedb.Interface = (*RegionResolver)(nil)

// RegionResolver is a [rangedb.Interface] for tests.
type RegionResolver struct {
	OnResolveRegion func(ctx context.Context, ip string) (name string, ok bool)
}

// ResolveRegion implements the [rangedb.Interface] interface for
// *RegionResolver.
func (r *RegionResolver) ResolveRegion(
	ctx context.Context,
	ip string,
) (name string, ok bool) {
	return r.OnResolveRegion(ctx, ip)
}

// type check
var _ service.Refresher = (*Refresher)(nil)

// Refresher is a [service.Refresher] for tests.
type Refresher struct {
	OnRefresh func(ctx context.Context) (err error)
}

// Refresh implements the [service.Refresher] interface for *Refresher.
func (r *Refresher) Refresh(ctx context.Context) (err error) {
	return r.OnRefresh(ctx)
}
