package backend

import "errors"

// Error kinds surfaced by the backend client. Handlers match them with
// errors.Is at the action boundary; none of them propagate past it.
var (
	// ErrValidation marks a required field that was empty or malformed.
	// Raised client-side before any storage work where feasible.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork marks a call that failed to complete (timeout,
	// connectivity). Any optimistic mutation tied to it must be rolled
	// back by the caller.
	ErrNetwork = errors.New("backend unreachable")

	// ErrNotFound marks an operation referencing an id the backend no
	// longer recognizes. Non-fatal: the item is removed from the store.
	ErrNotFound = errors.New("not found")

	// ErrPermission marks an actor lacking the role an action requires.
	ErrPermission = errors.New("permission denied")

	// ErrDuplicate marks a logically duplicate write, e.g. a second vote
	// by the same user on the same feedback item.
	ErrDuplicate = errors.New("duplicate")
)
