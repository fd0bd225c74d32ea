package system

// EstimateInput holds the meminfo counters (kB) the estimator needs
type EstimateInput struct {
	MemTotal     uint64
	MemFree      uint64
	ActiveFile   uint64
	InactiveFile uint64
	SReclaimable uint64
	MinFreeKB    uint64
}

// EstimateAvailable approximates MemAvailable the way kernels since 3.14
// compute it: free memory above the low watermark plus the page cache and
// reclaimable slab, each reduced by at most one watermark because not all of
// it can be dropped without swapping.
//
// The result is clamped to [0, MemTotal].
func EstimateAvailable(in EstimateInput) uint64 {
	wmarkLow := int64(in.MinFreeKB) * 5 / 4

	pagecache := int64(in.ActiveFile) + int64(in.InactiveFile)
	slab := int64(in.SReclaimable)

	available := int64(in.MemFree) - wmarkLow
	available += pagecache - min(pagecache/2, wmarkLow)
	available += slab - min(slab/2, wmarkLow)

	if available < 0 {
		return 0
	}
	if in.MemTotal > 0 && uint64(available) > in.MemTotal {
		return in.MemTotal
	}
	return uint64(available)
}
