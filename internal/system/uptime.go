package system

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const uptimeFile = "uptime"

// MaxUptimeSeconds is the largest whole-second uptime a time.Duration can hold
const MaxUptimeSeconds = float64(math.MaxInt64 / int64(time.Second))

// GetUptime returns the time since boot broken down into days, hours and minutes
func (p *Probe) GetUptime(_ context.Context) (*UptimeSnapshot, error) {
	lines, err := p.Reader.ReadLines(uptimeFile, true, false)
	if err != nil {
		return nil, err
	}

	path := p.Reader.Path(uptimeFile)
	if len(lines) == 0 {
		return nil, sourceErr(path, ErrMalformedUptime, "empty file")
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return nil, sourceErr(path, ErrMalformedUptime, "empty first line")
	}

	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 || secs > MaxUptimeSeconds || math.IsNaN(secs) {
		return nil, sourceErr(path, ErrMalformedUptime, "value %q", fields[0])
	}

	return NewUptime(secs), nil
}

// NewUptime derives the breakdown from a number of seconds in [0, MaxUptimeSeconds]
func NewUptime(secs float64) *UptimeSnapshot {
	totalMinutes := int64(math.Floor(secs / 60))
	micros := int64(math.Round(secs * 1e6))

	return &UptimeSnapshot{
		Seconds:   secs,
		Total:     time.Duration(micros) * time.Microsecond,
		Formatted: formatUptime(micros),
		Days:      int64(math.Floor(secs / 86400)),
		Hours:     totalMinutes / 60 % 24,
		Minutes:   totalMinutes % 60,
	}
}

// formatUptime renders "D day(s), H:MM:SS" with a microsecond fraction when non-zero
func formatUptime(micros int64) string {
	const (
		usPerSec = int64(time.Second / time.Microsecond)
		usPerDay = 86400 * usPerSec
	)

	days := micros / usPerDay
	rest := micros % usPerDay
	frac := rest % usPerSec
	secs := rest / usPerSec

	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	if frac != 0 {
		clock += fmt.Sprintf(".%06d", frac)
	}

	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}
