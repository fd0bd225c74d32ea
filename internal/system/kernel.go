package system

import (
	"fmt"
	"strconv"
	"strings"
)

// KernelRelease orders kernel versions as major<<16 + minor<<8 + patch
type KernelRelease uint32

// MinReleaseForEstimate is 2.6.27, the first release where min_free_kbytes
// drives the low watermark the estimator relies on
const MinReleaseForEstimate = KernelRelease(2<<16 + 6<<8 + 27)

// NewKernelRelease builds a release from its components, each capped at 255
func NewKernelRelease(major, minor, patch uint64) KernelRelease {
	return KernelRelease(min(major, 255)<<16 | min(minor, 255)<<8 | min(patch, 255))
}

// ParseRelease parses strings such as "2.6.32" or "5.15.0-91-generic"
func ParseRelease(release string) (KernelRelease, error) {
	release = strings.TrimSpace(release)
	if release == "" {
		return 0, fmt.Errorf("%w: empty release", ErrUnparsableVersion)
	}

	parts := strings.SplitN(release, ".", 3)
	if len(parts) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableVersion, release)
	}

	var nums [3]uint64
	for i, part := range parts {
		digits := leadingDigits(part)
		if digits == "" {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableVersion, release)
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrUnparsableVersion, release, err)
		}
		nums[i] = n
	}

	return NewKernelRelease(nums[0], nums[1], nums[2]), nil
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

func (k KernelRelease) Major() uint32 { return uint32(k) >> 16 }
func (k KernelRelease) Minor() uint32 { return uint32(k) >> 8 & 0xff }
func (k KernelRelease) Patch() uint32 { return uint32(k) & 0xff }

func (k KernelRelease) String() string {
	return fmt.Sprintf("%d.%d.%d", k.Major(), k.Minor(), k.Patch())
}
