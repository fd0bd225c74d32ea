package system

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Identity names the host a report was taken on
type Identity struct {
	Hostname      string
	FQDN          string
	KernelRelease string
}

// IdentityFunc looks up the host identity; failures are never fatal to a report
type IdentityFunc func(ctx context.Context) (Identity, error)

// GetHostIdentity returns the hostname, its fully qualified name and the kernel release
func GetHostIdentity(ctx context.Context) (Identity, error) {
	var id Identity

	hostStat, err := host.InfoWithContext(ctx)
	if err == nil && hostStat != nil {
		id.Hostname = hostStat.Hostname
		id.KernelRelease = hostStat.KernelVersion
	}

	if id.Hostname == "" {
		name, hErr := os.Hostname()
		if hErr != nil {
			return id, fmt.Errorf("failed to get hostname: %w", hErr)
		}
		id.Hostname = name
	}

	id.FQDN = lookupFQDN(ctx, net.DefaultResolver, id.Hostname)
	return id, nil
}

// lookupFQDN resolves hostname forward then back, keeping the first dotted
// name. The hostname itself is returned when nothing better is found.
func lookupFQDN(ctx context.Context, resolver *net.Resolver, hostname string) string {
	if strings.Contains(hostname, ".") {
		return hostname
	}

	addrs, err := resolver.LookupHost(ctx, hostname)
	if err != nil {
		return hostname
	}

	for _, addr := range addrs {
		names, err := resolver.LookupAddr(ctx, addr)
		if err != nil {
			continue
		}
		for _, name := range names {
			name = strings.TrimSuffix(name, ".")
			if strings.Contains(name, ".") {
				return name
			}
		}
	}
	return hostname
}
