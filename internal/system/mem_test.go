package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"syscheck/internal/procfs"
)

// legacyMeminfo has no MemAvailable line, as on kernels before 3.14
const legacyMeminfo = `MemTotal:        2000000 kB
MemFree:          100000 kB
Buffers:           20000 kB
Cached:           900000 kB
Active(file):     300000 kB
Inactive(file):   500000 kB
SReclaimable:      80000 kB
`

func legacyTree(release string) procTree {
	tree := defaultTree()
	tree["meminfo"] = legacyMeminfo
	tree["sys/kernel/osrelease"] = release + "\n"
	tree["sys/vm/min_free_kbytes"] = "40000\n"
	return tree
}

func TestGetMemoryUsageReportedAvailable(t *testing.T) {
	tree := defaultTree()
	p := newTestProbe(t, tree)

	mem, err := p.GetMemoryUsage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(1000000), mem.TotalKB)
	assert.Equal(t, uint64(400000), mem.AvailableKB)
	assert.False(t, mem.Estimated)
	assert.InDelta(t, 60.0, mem.UsedPercent, 1e-9)
	assert.Equal(t, uint64(500000), mem.UsedKB)

	assert.Equal(t, uint64(512), mem.HugePagesTotal)
	assert.Equal(t, uint64(384), mem.HugePagesUsed)
	assert.InDelta(t, 75.0, mem.HugePagesUsedPercent, 1e-9)
	assert.Equal(t, uint64(4096), mem.AnonHugePagesKB)
	assert.Equal(t, uint64(2048), mem.HugePageSizeKB)
}

func TestGetMemoryUsageReportedAvailableSkipsEstimatorFields(t *testing.T) {
	tree := procTree{
		"meminfo": "MemTotal: 1000000 kB\nMemFree: 200000 kB\nMemAvailable: 400000 kB\nCached: 300000 kB\n",
	}
	p := newTestProbe(t, tree)

	mem, err := p.GetMemoryUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(400000), mem.AvailableKB)
	assert.Zero(t, mem.HugePagesTotal)
	assert.Zero(t, mem.HugePagesUsedPercent)
}

func TestGetMemoryUsageEmptyHugePagePool(t *testing.T) {
	tree := procTree{
		"meminfo": "MemTotal: 1000000 kB\nMemFree: 200000 kB\nMemAvailable: 400000 kB\nCached: 300000 kB\n" +
			"AnonHugePages: 8192 kB\nHugePages_Total: 0\nHugePages_Free: 0\nHugepagesize: 2048 kB\n",
	}
	p := newTestProbe(t, tree)

	mem, err := p.GetMemoryUsage(context.Background())
	require.NoError(t, err)
	assert.Zero(t, mem.HugePagesTotal)
	assert.Zero(t, mem.HugePagesUsed)
	assert.Zero(t, mem.HugePagesUsedPercent)
	assert.Zero(t, mem.HugePageSizeKB)
	assert.Equal(t, uint64(8192), mem.AnonHugePagesKB)
}

func TestGetMemoryUsageEstimated(t *testing.T) {
	p := newTestProbe(t, legacyTree("3.10.0-1160.el7.x86_64"))

	mem, err := p.GetMemoryUsage(context.Background())
	require.NoError(t, err)

	// wmark_low = 50000
	// 100000 - 50000 + (800000 - 50000) + (80000 - 40000)
	assert.Equal(t, uint64(840000), mem.AvailableKB)
	assert.True(t, mem.Estimated)
	assert.InDelta(t, 58.0, mem.UsedPercent, 1e-9)
	assert.Equal(t, uint64(1000000), mem.UsedKB)
}

func TestGetMemoryUsageOldKernel(t *testing.T) {
	tree := legacyTree("2.6.26")
	tree["meminfo"] = "MemTotal: 2000000 kB\nMemFree: 100000 kB\nCached: 900000 kB\n"
	delete(tree, "sys/vm/min_free_kbytes")
	p := newTestProbe(t, tree)

	mem, err := p.GetMemoryUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100000), mem.AvailableKB)
	assert.True(t, mem.Estimated)
}

func TestGetMemoryUsageUnknownRelease(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := newTestProbeWithLog(t, legacyTree(""), zap.New(core))

	mem, err := p.GetMemoryUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100000), mem.AvailableKB)
	assert.Equal(t, 1, logs.Len())
}

func TestGetMemoryUsageUnparsableRelease(t *testing.T) {
	p := newTestProbe(t, legacyTree("linux-next"))

	_, err := p.GetMemoryUsage(context.Background())
	assert.ErrorIs(t, err, ErrUnparsableVersion)
}

func TestGetMemoryUsageMissingMinFree(t *testing.T) {
	tree := legacyTree("4.19.0")
	delete(tree, "sys/vm/min_free_kbytes")
	p := newTestProbe(t, tree)

	_, err := p.GetMemoryUsage(context.Background())
	assert.ErrorIs(t, err, procfs.ErrMissingSource)
}

func TestGetMemoryUsageBadMinFree(t *testing.T) {
	tree := legacyTree("4.19.0")
	tree["sys/vm/min_free_kbytes"] = "lots\n"
	p := newTestProbe(t, tree)

	_, err := p.GetMemoryUsage(context.Background())
	assert.ErrorIs(t, err, ErrMalformedMemoryTable)
}

func TestGetMemoryUsageMissingKeys(t *testing.T) {
	t.Run("base", func(t *testing.T) {
		tree := defaultTree()
		tree["meminfo"] = "MemTotal: 1000 kB\nMemAvailable: 10 kB\n"
		p := newTestProbe(t, tree)

		_, err := p.GetMemoryUsage(context.Background())
		require.ErrorIs(t, err, ErrMalformedMemoryTable)

		var memErr *MalformedMemoryError
		require.ErrorAs(t, err, &memErr)
		assert.Equal(t, []string{"MemFree", "Cached"}, memErr.Missing)
	})

	t.Run("estimator", func(t *testing.T) {
		tree := legacyTree("5.4.0")
		tree["meminfo"] = "MemTotal: 2000000 kB\nMemFree: 100000 kB\nCached: 900000 kB\n"
		p := newTestProbe(t, tree)

		_, err := p.GetMemoryUsage(context.Background())
		var memErr *MalformedMemoryError
		require.ErrorAs(t, err, &memErr)
		assert.Equal(t, []string{"Active(file)", "Inactive(file)", "SReclaimable"}, memErr.Missing)
		assert.Contains(t, err.Error(), "Active(file), Inactive(file), SReclaimable")
	})

	t.Run("zero total", func(t *testing.T) {
		tree := defaultTree()
		tree["meminfo"] = "MemTotal: 0 kB\nMemFree: 0 kB\nCached: 0 kB\n"
		p := newTestProbe(t, tree)

		_, err := p.GetMemoryUsage(context.Background())
		assert.ErrorIs(t, err, ErrMalformedMemoryTable)
	})
}

func TestGetMemoryUsageMissingSource(t *testing.T) {
	tree := defaultTree()
	delete(tree, "meminfo")
	p := newTestProbe(t, tree)

	_, err := p.GetMemoryUsage(context.Background())
	assert.ErrorIs(t, err, procfs.ErrMissingSource)
}
