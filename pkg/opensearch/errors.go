package opensearch

import "errors"

var (
	// ErrConnectionFailed indicates the client could not be constructed or
	// the cluster could not be reached. Fatal for the whole command; use
	// errors.Is() to check.
	ErrConnectionFailed = errors.New("opensearch connection failed")

	// ErrHealthcheckFailed indicates the cluster answered but reported an
	// error, or the initial info call did not complete.
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")
)
