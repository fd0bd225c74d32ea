// Package report renders a host snapshot for people and for other programs
package report

import (
	"fmt"
	"io"
	"strings"

	"syscheck/internal/system"
)

// Mode selects the output format
type Mode int

const (
	ModeText Mode = iota
	ModeCSV
	ModeTOML
	ModeProm
)

var modeNames = map[Mode]string{
	ModeText: "text",
	ModeCSV:  "csv",
	ModeTOML: "toml",
	ModeProm: "prom",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names returned by Mode.String, case-insensitively
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeText, fmt.Errorf("unknown output mode %q (want text, csv, toml or prom)", s)
}

// Write renders r to w in the given mode
func Write(w io.Writer, mode Mode, r *system.HostReport) error {
	if r == nil {
		return fmt.Errorf("nil report")
	}

	switch mode {
	case ModeText:
		return writeText(w, r)
	case ModeCSV:
		return writeCSV(w, r)
	case ModeTOML:
		return writeTOML(w, r)
	case ModeProm:
		return writeProm(w, r)
	default:
		return fmt.Errorf("unsupported output mode %v", mode)
	}
}
