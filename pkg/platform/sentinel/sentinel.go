package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and persistence adapters
// return these (optionally wrapped) so services can translate them into
// domain errors:
//   - ErrNotFound: record does not exist in the collection
//   - ErrCorrupt: the durable copy exists but cannot be decoded
//   - ErrIO: the durable medium could not be read or written
//   - ErrClosed: the store was closed and accepts no more operations
//   - ErrUnavailable: a backing service (redis, postgres, kafka) is unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrCorrupt     = errors.New("corrupt data")
	ErrIO          = errors.New("io failure")
	ErrClosed      = errors.New("closed")
	ErrUnavailable = errors.New("unavailable")
)
