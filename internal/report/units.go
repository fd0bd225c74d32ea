package report

import "strconv"

func unitHelper(bytes uint64, pow uint8, unit string) string {
	quotient := bytes >> pow
	tenths := bytes & ((1 << pow) - 1)
	tenths = ((tenths * 10) + ((1 << pow) >> 1)) >> pow
	if tenths == 10 {
		tenths = 0
		quotient++
	}
	return strconv.FormatUint(quotient, 10) + "." + strconv.FormatUint(tenths, 10) + " " + unit
}

// HumanBytes renders a byte count with one rounded decimal in binary units
func HumanBytes(n uint64) string {
	switch {
	case n >= 1<<40:
		return unitHelper(n, 40, "TiB")
	case n >= 1<<30:
		return unitHelper(n, 30, "GiB")
	case n >= 1<<20:
		return unitHelper(n, 20, "MiB")
	case n >= 1<<10:
		return unitHelper(n, 10, "KiB")
	}
	return strconv.FormatUint(n, 10) + " B"
}

// HumanKB is HumanBytes for the kB counts procfs reports
func HumanKB(kb uint64) string {
	return HumanBytes(kb * 1024)
}

func percent(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func mb(kb uint64) string {
	return strconv.FormatUint(kb/1024, 10)
}
