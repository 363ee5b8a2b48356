package rgdtest

import (
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// AssertEqualRecords compares two range records, or slices of them, and
// reports the diff on failure.
func AssertEqualRecords(tb testing.TB, want, got any) (ok bool) {
	tb.Helper()

	diff := gocmp.Diff(want, got)
	if diff == "" {
		return true
	}

	// Use assert.Failf instead of tb.Errorf to get a more consistent error
	// message.
	return assert.Failf(tb, "not equal", "got: %+v\nwant: %+v\ndiff: %s", got, want, diff)
}
