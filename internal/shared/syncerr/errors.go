// Package syncerr defines the error taxonomy shared by the sync pipeline.
package syncerr

import "errors"

var (
	// ErrSourceUnavailable is returned when an upstream fetch fails
	// (transport error, bad status, unparseable payload). It is recorded
	// per item and is never fatal to a whole synchronization run. An empty
	// result is not ErrSourceUnavailable.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrStoreWrite is returned when the persistence layer cannot execute
	// a batch. It aborts the remaining batches for the current entity but
	// is isolated from other entities and other stages.
	ErrStoreWrite = errors.New("store write failed")
)
