// Package status reports on the process and the machine it runs on.
package status

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Report is a snapshot of bot and host health.
type Report struct {
	Uptime     time.Duration // since the collector was created
	Goroutines int
	ProcessRSS uint64

	CPUPercent    float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	MemoryPercent float64
	HostUptime    time.Duration
	Platform      string
}

// Collector gathers a status report.
type Collector interface {
	Collect(ctx context.Context) (*Report, error)
}

// HostCollector reads host metrics through gopsutil.
type HostCollector struct {
	started time.Time
	now     func() time.Time
}

// NewHostCollector creates a collector whose uptime starts now.
func NewHostCollector() *HostCollector {
	return &HostCollector{
		started: time.Now(),
		now:     time.Now,
	}
}

// Collect gathers current metrics.
func (c *HostCollector) Collect(ctx context.Context) (*Report, error) {
	r := Report{
		Uptime:     c.now().Sub(c.started),
		Goroutines: runtime.NumGoroutine(),
	}

	cpuPercent, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("get cpu: %w", err)
	}
	if len(cpuPercent) > 0 {
		r.CPUPercent = cpuPercent[0]
	}

	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get memory: %w", err)
	}
	r.MemoryUsed = memInfo.Used
	r.MemoryTotal = memInfo.Total
	r.MemoryPercent = memInfo.UsedPercent

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get host info: %w", err)
	}
	r.HostUptime = time.Duration(info.Uptime) * time.Second
	r.Platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)

	// Not every platform exposes per-process memory; leave it zero.
	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil {
			r.ProcessRSS = mi.RSS
		}
	}

	return &r, nil
}

// FormatBytes converts bytes to human-readable format.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatDuration renders d as days, hours and minutes.
func FormatDuration(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
