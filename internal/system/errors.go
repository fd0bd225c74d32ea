package system

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedMemoryTable = errors.New("malformed memory table")
	ErrMalformedUptime      = errors.New("malformed uptime")
	ErrNoCPUAggregateLine   = errors.New("no cpu aggregate line")
	ErrMalformedCPUStat     = errors.New("malformed cpu stat")
	ErrMalformedSwapTable   = errors.New("malformed swap table")
	ErrUnparsableVersion    = errors.New("unparsable kernel version")
	ErrInterrupted          = errors.New("interrupted by user")
)

// MalformedMemoryError lists every required meminfo key that was absent
type MalformedMemoryError struct {
	Path    string
	Missing []string
	Reason  string
}

func (e *MalformedMemoryError) Error() string {
	msg := e.Path + ": " + ErrMalformedMemoryTable.Error()
	if len(e.Missing) > 0 {
		msg += ": missing " + strings.Join(e.Missing, ", ")
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *MalformedMemoryError) Unwrap() error {
	return ErrMalformedMemoryTable
}

// sourceErr prefixes a parse failure with the file it came from
func sourceErr(path string, kind error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%s: %w", path, kind)
	}
	return fmt.Errorf("%s: %w: %s", path, kind, fmt.Sprintf(format, args...))
}
