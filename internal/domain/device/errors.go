package device

import "errors"

// Device source errors
var (
	ErrUnreachable = errors.New("device source unreachable")
	ErrBadResponse = errors.New("device source returned an invalid response")
	ErrSyncFailed  = errors.New("device sync reported failure")
	ErrNotRunning  = errors.New("device source not running")
)
