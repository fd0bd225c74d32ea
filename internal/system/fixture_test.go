package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"syscheck/internal/procfs"
)

const (
	cpuinfoFixture = `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz
cpu MHz		: 2400.998
cache size	: 20480 KB

processor	: 1
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU E5-2670 0 @ 2.60GHz
cpu MHz		: 1800.500
cache size	: 20480 KB
`

	statFixture = `cpu  100 0 50 800 20 0 0 0 0 0
cpu0 60 0 30 400 10 0 0 0 0 0
cpu1 40 0 20 400 10 0 0 0 0 0
intr 12345 0 0
ctxt 98765
btime 1700000000
`

	meminfoFixture = `MemTotal:        1000000 kB
MemFree:          200000 kB
MemAvailable:     400000 kB
Buffers:           10000 kB
Cached:           300000 kB
Active(file):     150000 kB
Inactive(file):   120000 kB
SReclaimable:      30000 kB
AnonHugePages:      4096 kB
HugePages_Total:     512
HugePages_Free:      128
HugePages_Rsvd:        0
Hugepagesize:       2048 kB
`

	swapsFixture = `Filename				Type		Size		Used		Priority
/dev/sda2                               partition	2097148		524288		-2
/swapfile                               file		1048576		0		-3
`

	uptimeFixture = "90061.50 170000.12\n"
)

type procTree map[string]string

func newProcRoot(t *testing.T, files procTree) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func defaultTree() procTree {
	return procTree{
		"cpuinfo": cpuinfoFixture,
		"stat":    statFixture,
		"meminfo": meminfoFixture,
		"swaps":   swapsFixture,
		"uptime":  uptimeFixture,
	}
}

func newTestProbe(t *testing.T, files procTree) *Probe {
	t.Helper()
	return newTestProbeWithLog(t, files, zaptest.NewLogger(t))
}

func newTestProbeWithLog(t *testing.T, files procTree, log *zap.Logger) *Probe {
	t.Helper()
	p := NewProbe(procfs.NewReader(newProcRoot(t, files), log), log)
	p.OnlineCPUs = func(context.Context) (int, error) {
		return 0, errors.New("not in tests")
	}
	p.Identity = func(context.Context) (Identity, error) {
		return Identity{Hostname: "node1", FQDN: "node1.example.com", KernelRelease: "5.15.0-91-generic"}, nil
	}
	return p
}
