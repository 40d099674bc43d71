package usecase

import "time"

const (
	// DefaultPageSize is the page size used when the caller does not ask for one.
	DefaultPageSize = 10

	// MaxPageSize caps a single listing page.
	MaxPageSize = 100

	// DefaultTransactionTimeout bounds a single database transaction so a
	// stuck operation cannot hold account row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// CategoryCacheTTL is how long cached category listings stay fresh.
	CategoryCacheTTL = 10 * time.Minute
)
