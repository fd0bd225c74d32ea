package system

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	memInfoFile   = "meminfo"
	minFreeFile   = "sys/vm/min_free_kbytes"
	osReleaseFile = "sys/kernel/osrelease"
)

var (
	// needed for every report
	baseMemKeys = []string{"MemTotal", "MemFree", "Cached"}
	// needed only when MemAvailable has to be estimated on a modern kernel
	estimateMemKeys = []string{"Active(file)", "Inactive(file)", "SReclaimable"}
)

// memTable is /proc/meminfo keyed by field name, values in kB (or pages for HugePages_*)
type memTable map[string]uint64

func parseMemTable(lines []string) memTable {
	table := make(memTable, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		table[key] = v
	}
	return table
}

func (t memTable) missing(keys []string) []string {
	var missing []string
	for _, key := range keys {
		if _, ok := t[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// GetMemoryUsage returns memory and huge page usage.
// MemAvailable is taken verbatim when the kernel reports it and estimated otherwise.
func (p *Probe) GetMemoryUsage(ctx context.Context) (*MemorySnapshot, error) {
	lines, err := p.Reader.ReadLines(memInfoFile, true, false)
	if err != nil {
		return nil, err
	}

	path := p.Reader.Path(memInfoFile)
	mem := parseMemTable(lines)

	if missing := mem.missing(baseMemKeys); len(missing) > 0 {
		return nil, &MalformedMemoryError{Path: path, Missing: missing}
	}
	if mem["MemTotal"] == 0 {
		return nil, &MalformedMemoryError{Path: path, Reason: "MemTotal is zero"}
	}

	snapshot := &MemorySnapshot{TotalKB: mem["MemTotal"]}

	if avail := mem["MemAvailable"]; avail != 0 {
		snapshot.AvailableKB = avail
	} else {
		avail, err := p.estimateAvailable(ctx, path, mem)
		if err != nil {
			return nil, err
		}
		snapshot.AvailableKB = avail
		snapshot.Estimated = true
	}

	if free := mem["MemFree"] + mem["Cached"]; free < snapshot.TotalKB {
		snapshot.UsedKB = snapshot.TotalKB - free
	}
	snapshot.UsedPercent = 100 - (float64(snapshot.AvailableKB) * 100 / float64(snapshot.TotalKB))

	if total := mem["HugePages_Total"]; total > 0 {
		snapshot.HugePagesTotal = total
		if free := mem["HugePages_Free"]; free < total {
			snapshot.HugePagesUsed = total - free
		}
		snapshot.HugePagesUsedPercent = 100 * float64(snapshot.HugePagesUsed) / float64(total)
		snapshot.HugePageSizeKB = mem["Hugepagesize"]
	}
	// transparent huge pages do not depend on the reserved pool
	snapshot.AnonHugePagesKB = mem["AnonHugePages"]

	return snapshot, nil
}

func (p *Probe) estimateAvailable(ctx context.Context, path string, mem memTable) (uint64, error) {
	raw, err := p.Reader.ReadScalar(osReleaseFile)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		p.logger().Warn("kernel release unavailable, using MemFree as available memory")
		return mem["MemFree"], nil
	}

	release, err := ParseRelease(raw)
	if err != nil {
		return 0, sourceErr(p.Reader.Path(osReleaseFile), err, "")
	}
	if release < MinReleaseForEstimate {
		return mem["MemFree"], nil
	}

	if missing := mem.missing(estimateMemKeys); len(missing) > 0 {
		return 0, &MalformedMemoryError{Path: path, Missing: missing}
	}

	minFree, err := p.minFreeKB()
	if err != nil {
		return 0, err
	}

	in := EstimateInput{
		MemTotal:     mem["MemTotal"],
		MemFree:      mem["MemFree"],
		ActiveFile:   mem["Active(file)"],
		InactiveFile: mem["Inactive(file)"],
		SReclaimable: mem["SReclaimable"],
		MinFreeKB:    minFree,
	}
	avail := EstimateAvailable(in)

	p.logger().Debug("estimated available memory",
		zap.Stringer("release", release),
		zap.Uint64("min_free_kb", minFree),
		zap.Uint64("available_kb", avail))

	return avail, nil
}

func (p *Probe) minFreeKB() (uint64, error) {
	raw, err := p.Reader.ReadScalar(minFreeFile)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &MalformedMemoryError{Path: p.Reader.Path(minFreeFile), Reason: "min_free_kbytes " + strconv.Quote(raw)}
	}
	return v, nil
}
