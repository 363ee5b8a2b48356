// Package metrics contains definitions of the prometheus metrics that we use
// in regiond.
package metrics

// namespace is the namespace that we use in our prometheus metrics.
const namespace = "regiond"

// Subsystem names that we use in our prometheus metrics.
const (
	subsystemRangeDB = "rangedb"
)

// Namespace returns the namespace that we use in our prometheus metrics.
func Namespace() (ns string) {
	return namespace
}
