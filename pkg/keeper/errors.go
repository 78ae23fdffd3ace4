package keeper

import "errors"

var (
	// ErrNotFound indicates the named entity does not exist in the queried
	// store. During publish this is the normal create-detection signal, not
	// a failure; use errors.Is() to check.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates an update was rejected because the remote entity
	// changed after its concurrency token was read. The entity is reported
	// as failed and never retried: a concurrent edit must be investigated by
	// an operator, not silently overwritten.
	ErrConflict = errors.New("concurrency token mismatch")

	// ErrMalformedDocument indicates an entity's data failed minimal
	// structural validation (not a mapping, missing policy body, template
	// without index_patterns). Batch operations skip the entity and continue.
	ErrMalformedDocument = errors.New("malformed document")
)
