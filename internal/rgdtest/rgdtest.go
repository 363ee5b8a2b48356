// Package rgdtest contains simple mocks for common interfaces and other test
// utilities.
package rgdtest

import (
	"context"
	"time"
)

// Timeout is the common timeout for tests and contexts.
const Timeout = 1 * time.Second

// NewErrorCollector returns a new *ErrorCollector that ignores all errors.
func NewErrorCollector() (c *ErrorCollector) {
	return &ErrorCollector{
		OnCollect: func(_ context.Context, _ error) {},
	}
}
