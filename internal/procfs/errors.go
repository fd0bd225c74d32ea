package procfs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSource is returned when a required kernel file does not exist
	ErrMissingSource = errors.New("missing source")
	// ErrReadFailure is returned for any other I/O failure on an existing file
	ErrReadFailure = errors.New("read failure")
)

// SourceError ties a read failure to the file that caused it
type SourceError struct {
	Path string
	Kind error
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is
func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
