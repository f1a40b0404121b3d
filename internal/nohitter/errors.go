package nohitter

import (
	"errors"
	"fmt"
)

// ErrTeamNotFound means a team row was never seeded. Run `nonoctl seed teams`.
var ErrTeamNotFound = errors.New("team not seeded")

// UpstreamError is a live-data fetch failure. Fatal to the whole
// invocation: the engine aborts before any state writes.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream %s: %v", e.Op, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }

// StoreError is a single team read/write failure. Logged and isolated to
// that team-side; sibling processing continues.
type StoreError struct {
	Op     string
	TeamID int
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s team %d: %v", e.Op, e.TeamID, e.Err)
}
func (e *StoreError) Unwrap() error { return e.Err }

// DeliveryError is a notification send failure. The corresponding state
// write is skipped so the next invocation retries the text.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("delivery: %v", e.Err) }
func (e *DeliveryError) Unwrap() error { return e.Err }
