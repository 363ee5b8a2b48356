package metrics

import (
	"context"
	"fmt"

	"github.com/AdguardTeam/golibs/container"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/ipregion/regiond/internal/rangedb"
	"github.com/prometheus/client_golang/prometheus"
)

// RangeDB is the Prometheus-based implementation of the [rangedb.Metrics]
// interface.
type RangeDB struct {
	// size is a gauge with the number of records loaded from the registry.
	size prometheus.Gauge

	// updateStatus is a gauge with the status of the last registry refresh.
	// 1 means success.
	updateStatus prometheus.Gauge

	// updateTime is a gauge with the timestamp of the last registry refresh.
	updateTime prometheus.Gauge

	// lookupsMatched is a counter of lookups that resolved to a region.
	lookupsMatched prometheus.Counter

	// lookupsMissed is a counter of lookups that resolved to nothing.
	lookupsMissed prometheus.Counter
}

// NewRangeDB registers the region database metrics in reg and returns a
// properly initialized *RangeDB.
func NewRangeDB(namespace string, reg prometheus.Registerer) (m *RangeDB, err error) {
	const (
		sizeName         = "size"
		updateStatusName = "update_status"
		updateTimeName   = "update_timestamp"
		lookupsName      = "lookups_total"
	)

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      lookupsName,
		Subsystem: subsystemRangeDB,
		Namespace: namespace,
		Help:      "Total number of performed lookups by result.",
	}, []string{"result"})

	m = &RangeDB{
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:      sizeName,
			Subsystem: subsystemRangeDB,
			Namespace: namespace,
			Help:      "Count of records loaded from the IP-range registry.",
		}),
		updateStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:      updateStatusName,
			Subsystem: subsystemRangeDB,
			Namespace: namespace,
			Help:      "Status of the last registry refresh. 1 means success.",
		}),
		updateTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:      updateTimeName,
			Subsystem: subsystemRangeDB,
			Namespace: namespace,
			Help:      "Timestamp of the last registry refresh.",
		}),
		lookupsMatched: lookups.WithLabelValues("match"),
		lookupsMissed:  lookups.WithLabelValues("miss"),
	}

	var errs []error
	collectors := container.KeyValues[string, prometheus.Collector]{{
		Key:   sizeName,
		Value: m.size,
	}, {
		Key:   updateStatusName,
		Value: m.updateStatus,
	}, {
		Key:   updateTimeName,
		Value: m.updateTime,
	}, {
		Key:   lookupsName,
		Value: lookups,
	}}

	for _, c := range collectors {
		err = reg.Register(c.Value)
		if err != nil {
			errs = append(errs, fmt.Errorf("registering metrics %q: %w", c.Key, err))
		}
	}

	if err = errors.Join(errs...); err != nil {
		return nil, err
	}

	return m, nil
}

// type check
var _ rangedb.Metrics = (*RangeDB)(nil)

// SetSize implements the [rangedb.Metrics] interface for *RangeDB.
func (m *RangeDB) SetSize(_ context.Context, n int) {
	m.size.Set(float64(n))
}

// SetStatus implements the [rangedb.Metrics] interface for *RangeDB.
func (m *RangeDB) SetStatus(_ context.Context, err error) {
	m.updateTime.SetToCurrentTime()
	if err == nil {
		m.updateStatus.Set(1)
	} else {
		m.updateStatus.Set(0)
	}
}

// IncrementLookups implements the [rangedb.Metrics] interface for *RangeDB.
func (m *RangeDB) IncrementLookups(_ context.Context, matched bool) {
	if matched {
		m.lookupsMatched.Inc()
	} else {
		m.lookupsMissed.Inc()
	}
}
