package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"syscheck/internal/system"
)

// CSVHeader is the fixed column order of the CSV output
var CSVHeader = []string{
	"Hostname",
	"FQDN",
	"CPUMzTotal",
	"CPUConsumption",
	"CPUs",
	"MemTotal(Mb)",
	"MemoryUsagePerc",
	"MemAvailable(Mb)",
	"HugePagesTotal",
	"HugePagesUsagePerc",
	"AnonHugePages(Mb)",
	"SwapTotal(Mb)",
	"SwapUsagePerc",
	"UptimeDays",
}

func csvRecord(r *system.HostReport) []string {
	return []string{
		r.Hostname,
		r.FQDN,
		strconv.FormatUint(r.CPU.TotalMHz, 10),
		percent(r.CPU.UtilizationPercent),
		strconv.Itoa(r.CPU.LogicalCPUs),
		mb(r.Memory.TotalKB),
		percent(r.Memory.UsedPercent),
		mb(r.Memory.AvailableKB),
		strconv.FormatUint(r.Memory.HugePagesTotal, 10),
		percent(r.Memory.HugePagesUsedPercent),
		mb(r.Memory.AnonHugePagesKB),
		mb(r.Swap.TotalKB),
		percent(r.Swap.UsedPercent),
		strconv.FormatInt(r.Uptime.Days, 10),
	}
}

func writeCSV(w io.Writer, r *system.HostReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	if err := cw.Write(csvRecord(r)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
