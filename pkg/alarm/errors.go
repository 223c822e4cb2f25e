package alarm

import "errors"

// Sentinel errors returned by the scheduler and relayed to clients.
var (
	// ErrNotFound is returned when an operation references an unknown id.
	ErrNotFound = errors.New("alarm not found")

	// ErrShuttingDown is returned for calls that arrive after shutdown
	// was initiated.
	ErrShuttingDown = errors.New("daemon is shutting down")
)

// StoreError wraps a persistence failure. Fatal at startup; for runtime
// mutations it is surfaced to the caller and the in-memory change rolled back.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return "alarm store: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error { return e.Err }
