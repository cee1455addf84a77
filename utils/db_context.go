package utils

import (
	"context"
	"time"
)

// DefaultQueryTimeout is the default timeout for database queries
const DefaultQueryTimeout = 30 * time.Second

// FastQueryTimeout is for simple lookups that should return quickly
const FastQueryTimeout = 10 * time.Second

// SlowQueryTimeout is for heavy statements such as version diff loads
// and the nightly archive sweep
const SlowQueryTimeout = 60 * time.Second

// GetQueryContext returns a context with timeout for database queries.
// If a parent context is provided it is used; otherwise a background
// context is created.
func GetQueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

// GetDefaultQueryContext returns a context with the default timeout
func GetDefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, DefaultQueryTimeout)
}

// GetFastQueryContext returns a context with the fast query timeout
func GetFastQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, FastQueryTimeout)
}

// GetSlowQueryContext returns a context with the slow query timeout
func GetSlowQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, SlowQueryTimeout)
}
