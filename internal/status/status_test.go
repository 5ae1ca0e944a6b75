package status

import (
	"context"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "0m"},
		{5 * time.Minute, "5m"},
		{2*time.Hour + 3*time.Minute + 59*time.Second, "2h 3m"},
		{49*time.Hour + 10*time.Minute, "2d 1h 10m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHostCollectorUptime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &HostCollector{
		started: start,
		now:     func() time.Time { return start.Add(90 * time.Minute) },
	}

	r, err := c.Collect(context.Background())
	if err != nil {
		t.Skipf("host metrics unavailable: %v", err)
	}
	if r.Uptime != 90*time.Minute {
		t.Errorf("Uptime = %v, want 90m", r.Uptime)
	}
	if r.Goroutines < 1 {
		t.Errorf("Goroutines = %d, want at least 1", r.Goroutines)
	}
}
