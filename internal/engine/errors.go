package engine

import "errors"

// Error kinds raised from handlers (spec.md §7). NotFound errors indicate a
// violated invariant built during setup; InvariantViolation errors indicate
// a programmer error in a handler. Both are fatal — there is no meaningful
// partial-failure recovery in a discrete-event model.
var (
	ErrBusNotFound        = errors.New("bus not found")
	ErrStopNotFound       = errors.New("stop not found")
	ErrSignalNotFound     = errors.New("signal not found")
	ErrNextElementMissing = errors.New("next element missing")
	ErrUnknownEventType   = errors.New("unknown event type")
	ErrInvariantViolation = errors.New("invariant violation")
)
