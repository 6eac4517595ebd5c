package sentinel

import "errors"

// Sentinel errors for storage and collaborator facts. Stores return these
// (optionally wrapped); services translate them into domain errors.
//
//   - ErrNotFound: business, bootstrap or filing row does not exist
//   - ErrConflict: a unique key (filing id, identifier) is already taken
//   - ErrInvalidState: row is in the wrong state for the requested write
//   - ErrUnavailable: collaborator or backing store temporarily unavailable
//   - ErrLockHeld: another worker holds the submission lock for the filing
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrLockHeld     = errors.New("lock held")
)
