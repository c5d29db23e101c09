package chain

import (
	"errors"
	"fmt"
)

var ErrNoBlockHash = errors.New("node returned no best block hash")

// ConnectionError is returned when the endpoint cannot be reached or the session
// could not be verified.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to chain endpoint %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ScanError aborts a storage scan. Entries read before the failure must be discarded.
type ScanError struct {
	Pallet string
	Item   string
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("failed to scan %s.%s: %v", e.Pallet, e.Item, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
