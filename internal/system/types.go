package system

import "time"

// HostReport is one point-in-time view of the host
type HostReport struct {
	Hostname      string         `json:"hostname" toml:"hostname"`
	FQDN          string         `json:"fqdn" toml:"fqdn"`
	KernelRelease string         `json:"kernel_release,omitempty" toml:"kernel_release,omitempty"`
	CPU           CPUSnapshot    `json:"cpu" toml:"cpu"`
	Memory        MemorySnapshot `json:"memory" toml:"memory"`
	Swap          SwapSnapshot   `json:"swap" toml:"swap"`
	Uptime        UptimeSnapshot `json:"uptime" toml:"uptime"`
}

// CPUSnapshot represents CPU clock and utilization since boot
type CPUSnapshot struct {
	TotalMHz           uint64  `json:"total_mhz" toml:"total_mhz"`
	UtilizationPercent float64 `json:"utilization_percent" toml:"utilization_percent"`
	LogicalCPUs        int     `json:"logical_cpus" toml:"logical_cpus"`
}

// MemorySnapshot represents memory usage in kB, huge pages in pages
type MemorySnapshot struct {
	TotalKB              uint64  `json:"total_kb" toml:"total_kb"`
	UsedKB               uint64  `json:"used_kb" toml:"used_kb"`
	UsedPercent          float64 `json:"used_percent" toml:"used_percent"`
	AvailableKB          uint64  `json:"available_kb" toml:"available_kb"`
	Estimated            bool    `json:"estimated" toml:"estimated"`
	HugePagesTotal       uint64  `json:"hugepages_total" toml:"hugepages_total"`
	HugePagesUsed        uint64  `json:"hugepages_used" toml:"hugepages_used"`
	HugePagesUsedPercent float64 `json:"hugepages_used_percent" toml:"hugepages_used_percent"`
	AnonHugePagesKB      uint64  `json:"anon_hugepages_kb" toml:"anon_hugepages_kb"`
	HugePageSizeKB       uint64  `json:"hugepage_size_kb" toml:"hugepage_size_kb"`
}

// SwapSnapshot represents swap usage summed over all swap devices
type SwapSnapshot struct {
	TotalKB     uint64  `json:"total_kb" toml:"total_kb"`
	UsedKB      uint64  `json:"used_kb" toml:"used_kb"`
	UsedPercent float64 `json:"used_percent" toml:"used_percent"`
	Devices     int     `json:"devices" toml:"devices"`
}

// UptimeSnapshot represents time since boot
type UptimeSnapshot struct {
	Seconds   float64       `json:"seconds" toml:"seconds"`
	Total     time.Duration `json:"-" toml:"-"`
	Formatted string        `json:"formatted" toml:"formatted"`
	Days      int64         `json:"days" toml:"days"`
	Hours     int64         `json:"hours" toml:"hours"`
	Minutes   int64         `json:"minutes" toml:"minutes"`
}
