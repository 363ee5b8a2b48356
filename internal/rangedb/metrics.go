package rangedb

import "context"

// Metrics is an interface that is used for the collection of the region
// database statistics.
type Metrics interface {
	// SetSize sets the number of records loaded from the registry.
	SetSize(ctx context.Context, n int)

	// SetStatus sets the status and time of the registry refresh attempt.
	SetStatus(ctx context.Context, err error)

	// IncrementLookups increments the number of performed lookups.  matched is
	// true when the lookup resolved to a region.
	IncrementLookups(ctx context.Context, matched bool)
}

// EmptyMetrics is the implementation of the [Metrics] interface that does
// nothing.
type EmptyMetrics struct{}

// type check
var _ Metrics = EmptyMetrics{}

// SetSize implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) SetSize(_ context.Context, _ int) {}

// SetStatus implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) SetStatus(_ context.Context, _ error) {}

// IncrementLookups implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) IncrementLookups(_ context.Context, _ bool) {}
