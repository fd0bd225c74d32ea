package system

import (
	"context"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.uber.org/zap"
)

const (
	cpuInfoFile = "cpuinfo"
	statFile    = "stat"
)

// CPUCounters are the cumulative jiffies of the aggregate "cpu" line in /proc/stat
type CPUCounters struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// Total is the sum of all eight counters
func (c CPUCounters) Total() uint64 {
	return c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Idle + c.IOWait + c.Steal
}

// Utilization is the busy share since boot, 100 - idle/total*100
func (c CPUCounters) Utilization() float64 {
	return 100 - (100 * float64(c.Idle) / float64(c.Total()))
}

// OnlineCPUsFunc reports the operating system's count of online logical CPUs
type OnlineCPUsFunc func(ctx context.Context) (int, error)

// OSOnlineCPUs asks gopsutil for the logical CPU count
func OSOnlineCPUs(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// GetCPUUsage returns clock, utilization and logical CPU count
func (p *Probe) GetCPUUsage(ctx context.Context) (*CPUSnapshot, error) {
	cpuinfo, err := p.Reader.ReadLines(cpuInfoFile, true, false)
	if err != nil {
		return nil, err
	}

	stat, err := p.Reader.ReadLines(statFile, true, false)
	if err != nil {
		return nil, err
	}

	counters, err := aggregateCounters(p.Reader.Path(statFile), stat)
	if err != nil {
		return nil, err
	}

	return &CPUSnapshot{
		TotalMHz:           totalMHz(cpuinfo),
		UtilizationPercent: counters.Utilization(),
		LogicalCPUs:        p.logicalCPUs(ctx, cpuinfo),
	}, nil
}

// totalMHz sums the integer part of every "cpu MHz" entry
func totalMHz(cpuinfo []string) uint64 {
	var total uint64
	for _, line := range cpuinfo {
		label, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(label) != "cpu MHz" {
			continue
		}
		whole, _, _ := strings.Cut(strings.TrimSpace(value), ".")
		mhz, err := strconv.ParseUint(whole, 10, 64)
		if err != nil {
			continue
		}
		total += mhz
	}
	return total
}

// statTable maps the first column of /proc/stat to the numeric columns after it
func statTable(lines []string) map[string][]string {
	table := make(map[string][]string, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		table[fields[0]] = fields[1:]
	}
	return table
}

func aggregateCounters(path string, stat []string) (CPUCounters, error) {
	fields, ok := statTable(stat)["cpu"]
	if !ok {
		return CPUCounters{}, sourceErr(path, ErrNoCPUAggregateLine, "")
	}
	if len(fields) < 4 {
		return CPUCounters{}, sourceErr(path, ErrMalformedCPUStat, "%d counters on cpu line", len(fields))
	}

	// Kernels before 2.6.11 report fewer columns; the missing ones stay zero.
	var vals [8]uint64
	for i := 0; i < len(vals) && i < len(fields); i++ {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return CPUCounters{}, sourceErr(path, ErrMalformedCPUStat, "counter %q", fields[i])
		}
		vals[i] = v
	}

	c := CPUCounters{
		User:    vals[0],
		Nice:    vals[1],
		System:  vals[2],
		Idle:    vals[3],
		IOWait:  vals[4],
		IRQ:     vals[5],
		SoftIRQ: vals[6],
		Steal:   vals[7],
	}
	if c.Total() == 0 {
		return CPUCounters{}, sourceErr(path, ErrMalformedCPUStat, "all counters are zero")
	}
	return c, nil
}

func (p *Probe) logicalCPUs(ctx context.Context, cpuinfo []string) int {
	if p.OnlineCPUs != nil {
		n, err := p.OnlineCPUs(ctx)
		if err == nil && n > 0 {
			return n
		}
		p.logger().Warn("online cpu count unavailable, counting processor entries", zap.Error(err))
	}

	count := 0
	for _, line := range cpuinfo {
		if strings.HasPrefix(strings.ToLower(line), "processor") {
			count++
		}
	}
	return count
}
