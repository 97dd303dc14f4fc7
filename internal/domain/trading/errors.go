package trading

import (
	"fmt"
	"time"
)

// InvalidConfigError indicates a malformed or out-of-range trade configuration.
// It is fatal: the engine aborts before enumerating any hub pair.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid trade config: %s", e.Reason)
}

func NewInvalidConfigError(format string, args ...interface{}) *InvalidConfigError {
	return &InvalidConfigError{Reason: fmt.Sprintf(format, args...)}
}

// StaleSnapshotError indicates the market snapshot's age exceeds its TTL.
// It is fatal: the caller must refresh the snapshot and retry.
type StaleSnapshotError struct {
	Age time.Duration
	TTL time.Duration
}

func (e *StaleSnapshotError) Error() string {
	return fmt.Sprintf("market snapshot is stale: age %s exceeds ttl %s", e.Age, e.TTL)
}
