package report

import (
	"fmt"
	"io"
	"strings"

	"syscheck/internal/system"
)

func writeText(w io.Writer, r *system.HostReport) error {
	var b strings.Builder

	line := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "%-16s: "+format+"\n", append([]any{label}, args...)...)
	}

	line("Hostname", "%s (%s)", r.Hostname, r.FQDN)
	if r.KernelRelease != "" {
		line("Kernel", "%s", r.KernelRelease)
	}
	line("CPU Tot/Used", "%dMHz/%s%% (%dCPU(s))", r.CPU.TotalMHz, percent(r.CPU.UtilizationPercent), r.CPU.LogicalCPUs)

	mem := r.Memory
	line("Memory Tot/Used", "%sMb/%s%%", mb(mem.TotalKB), percent(mem.UsedPercent))
	avail := HumanKB(mem.AvailableKB)
	if mem.Estimated {
		avail += " (estimated)"
	}
	line("Memory Avail", "%s", avail)

	if mem.HugePagesTotal > 0 {
		line("HugePages Used", "%d/%d (%s%%, %s pages)",
			mem.HugePagesUsed, mem.HugePagesTotal, percent(mem.HugePagesUsedPercent), HumanKB(mem.HugePageSizeKB))
	} else {
		line("HugePages Used", "none")
	}
	line("AnonHugePages", "%s", HumanKB(mem.AnonHugePagesKB))

	if r.Swap.TotalKB > 0 {
		line("Swap Tot/Used", "%sMb/%s%%", mb(r.Swap.TotalKB), percent(r.Swap.UsedPercent))
	} else {
		line("Swap Tot/Used", "none")
	}

	line("System uptime", "%s", r.Uptime.Formatted)

	_, err := io.WriteString(w, b.String())
	return err
}
