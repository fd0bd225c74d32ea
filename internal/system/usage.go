package system

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"syscheck/internal/procfs"
)

// Probe takes a single snapshot of the host from procfs
type Probe struct {
	Reader     *procfs.Reader
	Log        *zap.Logger
	OnlineCPUs OnlineCPUsFunc
	Identity   IdentityFunc
}

// NewProbe creates a Probe with the operating system collaborators wired in
func NewProbe(reader *procfs.Reader, log *zap.Logger) *Probe {
	if log == nil {
		log = zap.NewNop()
	}
	if reader == nil {
		reader = procfs.NewReader("", log)
	}
	return &Probe{
		Reader:     reader,
		Log:        log,
		OnlineCPUs: OSOnlineCPUs,
		Identity:   GetHostIdentity,
	}
}

func (p *Probe) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

// Collect runs every extractor once and assembles the report.
// The first failure aborts the snapshot; no partial report is returned.
func (p *Probe) Collect(ctx context.Context) (*HostReport, error) {
	report := &HostReport{}

	if err := checkInterrupted(ctx); err != nil {
		return nil, err
	}
	if p.Identity != nil {
		id, err := p.Identity(ctx)
		if err != nil {
			p.logger().Warn("host identity lookup failed", zap.Error(err))
		}
		report.Hostname = id.Hostname
		report.FQDN = id.FQDN
		report.KernelRelease = id.KernelRelease
	}

	if err := checkInterrupted(ctx); err != nil {
		return nil, err
	}
	cpu, err := p.GetCPUUsage(ctx)
	if err != nil {
		return nil, err
	}
	report.CPU = *cpu

	if err := checkInterrupted(ctx); err != nil {
		return nil, err
	}
	mem, err := p.GetMemoryUsage(ctx)
	if err != nil {
		return nil, err
	}
	report.Memory = *mem

	if err := checkInterrupted(ctx); err != nil {
		return nil, err
	}
	swap, err := p.GetSwapUsage(ctx)
	if err != nil {
		return nil, err
	}
	report.Swap = *swap

	if err := checkInterrupted(ctx); err != nil {
		return nil, err
	}
	uptime, err := p.GetUptime(ctx)
	if err != nil {
		return nil, err
	}
	report.Uptime = *uptime

	p.logger().Debug("snapshot collected", zap.String("hostname", report.Hostname))

	return report, nil
}

func checkInterrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInterrupted, err)
	}
	return nil
}
