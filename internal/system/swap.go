package system

import (
	"context"
	"strconv"
	"strings"
)

const swapsFile = "swaps"

// GetSwapUsage sums size and used over every swap device.
// A host without /proc/swaps or without devices reports zero swap.
func (p *Probe) GetSwapUsage(_ context.Context) (*SwapSnapshot, error) {
	rows, err := p.Reader.ReadLines(swapsFile, false, true)
	if err != nil {
		return nil, err
	}

	snapshot := &SwapSnapshot{}
	for _, row := range rows {
		fields := strings.Fields(row)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
			continue
		}
		if len(fields) < 4 {
			return nil, sourceErr(p.Reader.Path(swapsFile), ErrMalformedSwapTable, "short row %q", row)
		}

		size, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, sourceErr(p.Reader.Path(swapsFile), ErrMalformedSwapTable, "size %q", fields[2])
		}
		used, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return nil, sourceErr(p.Reader.Path(swapsFile), ErrMalformedSwapTable, "used %q", fields[3])
		}

		snapshot.TotalKB += size
		snapshot.UsedKB += used
		snapshot.Devices++
	}

	if snapshot.TotalKB == 0 {
		return &SwapSnapshot{}, nil
	}
	snapshot.UsedPercent = 100 * float64(snapshot.UsedKB) / float64(snapshot.TotalKB)

	return snapshot, nil
}
