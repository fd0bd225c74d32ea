package system

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"syscheck/internal/procfs"
)

func TestGetCPUUsage(t *testing.T) {
	p := newTestProbe(t, defaultTree())

	cpu, err := p.GetCPUUsage(context.Background())
	require.NoError(t, err)

	// 2400 + 1800, fractions truncated before summing
	assert.Equal(t, uint64(4200), cpu.TotalMHz)
	// 100 - 100*800/970
	assert.InDelta(t, 17.53, cpu.UtilizationPercent, 0.01)
	assert.Equal(t, 2, cpu.LogicalCPUs)
}

func TestGetCPUUsagePrefersOnlineCount(t *testing.T) {
	p := newTestProbe(t, defaultTree())
	p.OnlineCPUs = func(context.Context) (int, error) { return 8, nil }

	cpu, err := p.GetCPUUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, cpu.LogicalCPUs)
}

func TestGetCPUUsageOnlineCountUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := newTestProbeWithLog(t, defaultTree(), zap.New(core))

	cpu, err := p.GetCPUUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cpu.LogicalCPUs)
	assert.Equal(t, 1, logs.FilterMessage("online cpu count unavailable, counting processor entries").Len())
}

func TestGetCPUUsageManyInterrupts(t *testing.T) {
	tree := defaultTree()
	tree["stat"] = "cpu 100 0 50 800 20 0 0 0\ncpu0 100 0 50 800 20 0 0 0\n" +
		"intr 1" + strings.Repeat(" 0", 40000) + "\nctxt 1234\n"
	p := newTestProbe(t, tree)

	cpu, err := p.GetCPUUsage(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 17.53, cpu.UtilizationPercent, 0.01)
}

func TestGetCPUUsageProcessorLabels(t *testing.T) {
	tree := defaultTree()
	tree["cpuinfo"] = "Processor\t: ARMv7 Processor rev 4 (v7l)\nprocessor\t: 0\nBogoMIPS\t: 38.40\n\nprocessor\t: 1\n"
	p := newTestProbe(t, tree)

	cpu, err := p.GetCPUUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cpu.TotalMHz)
	assert.Equal(t, 3, cpu.LogicalCPUs)
}

func TestGetCPUUsageNoAggregateLine(t *testing.T) {
	tree := defaultTree()
	tree["stat"] = "cpu0 60 0 30 400 10 0 0 0\ncpu1 40 0 20 400 10 0 0 0\nctxt 1\n"
	p := newTestProbe(t, tree)

	_, err := p.GetCPUUsage(context.Background())
	assert.ErrorIs(t, err, ErrNoCPUAggregateLine)
}

func TestGetCPUUsageMalformed(t *testing.T) {
	for name, stat := range map[string]string{
		"all zero":     "cpu 0 0 0 0 0 0 0 0\n",
		"too short":    "cpu 1 2 3\n",
		"not a number": "cpu 1 2 x 4 5 6 7 8\n",
	} {
		t.Run(name, func(t *testing.T) {
			tree := defaultTree()
			tree["stat"] = stat
			p := newTestProbe(t, tree)

			_, err := p.GetCPUUsage(context.Background())
			assert.ErrorIs(t, err, ErrMalformedCPUStat)
		})
	}
}

func TestGetCPUUsageShortLineZeroFilled(t *testing.T) {
	tree := defaultTree()
	tree["stat"] = "cpu 100 0 100 800\n"
	p := newTestProbe(t, tree)

	cpu, err := p.GetCPUUsage(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 20.0, cpu.UtilizationPercent, 1e-9)
}

func TestGetCPUUsageMissingSource(t *testing.T) {
	tree := defaultTree()
	delete(tree, "stat")
	p := newTestProbe(t, tree)

	_, err := p.GetCPUUsage(context.Background())
	assert.ErrorIs(t, err, procfs.ErrMissingSource)
}

func TestCPUCounters(t *testing.T) {
	c := CPUCounters{User: 100, System: 50, Idle: 800, IOWait: 20}
	assert.Equal(t, uint64(970), c.Total())
	assert.InDelta(t, 100-100*800.0/970.0, c.Utilization(), 1e-9)
}
