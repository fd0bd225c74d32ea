package report

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"syscheck/internal/system"
)

const namespace = "syscheck"

type gauge struct {
	subsystem, name, help string
	value                 float64
}

func gauges(r *system.HostReport) []gauge {
	const kb = 1024
	mem := r.Memory

	estimated := 0.0
	if mem.Estimated {
		estimated = 1
	}

	return []gauge{
		{"cpu", "mhz_total", "Sum of the current clock of every core in MHz.", float64(r.CPU.TotalMHz)},
		{"cpu", "utilization_percent", "Busy share of CPU time since boot.", r.CPU.UtilizationPercent},
		{"cpu", "logical", "Number of online logical CPUs.", float64(r.CPU.LogicalCPUs)},
		{"memory", "total_bytes", "Total usable memory.", float64(mem.TotalKB * kb)},
		{"memory", "used_bytes", "Memory not free and not page cache.", float64(mem.UsedKB * kb)},
		{"memory", "available_bytes", "Memory available without swapping.", float64(mem.AvailableKB * kb)},
		{"memory", "available_estimated", "1 when available memory was estimated instead of read from MemAvailable.", estimated},
		{"memory", "used_percent", "Share of memory not available.", mem.UsedPercent},
		{"hugepages", "total", "Configured huge pages.", float64(mem.HugePagesTotal)},
		{"hugepages", "used", "Huge pages in use.", float64(mem.HugePagesUsed)},
		{"hugepages", "size_bytes", "Size of one huge page.", float64(mem.HugePageSizeKB * kb)},
		{"hugepages", "anon_bytes", "Memory backed by transparent huge pages.", float64(mem.AnonHugePagesKB * kb)},
		{"swap", "total_bytes", "Total swap over all devices.", float64(r.Swap.TotalKB * kb)},
		{"swap", "used_bytes", "Swap in use over all devices.", float64(r.Swap.UsedKB * kb)},
		{"swap", "devices", "Number of active swap devices.", float64(r.Swap.Devices)},
		{"", "uptime_seconds", "Seconds since boot.", r.Uptime.Seconds},
	}
}

// writeProm renders the node_exporter textfile collector format
func writeProm(w io.Writer, r *system.HostReport) error {
	reg := prometheus.NewPedanticRegistry()

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "host_info",
		Help:      "Identity of the probed host.",
	}, []string{"hostname", "fqdn", "kernel_release"})
	info.WithLabelValues(r.Hostname, r.FQDN, r.KernelRelease).Set(1)
	reg.MustRegister(info)

	for _, g := range gauges(r) {
		m := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: g.subsystem,
			Name:      g.name,
			Help:      g.help,
		})
		m.Set(g.value)
		reg.MustRegister(m)
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
