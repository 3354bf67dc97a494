package calc_test

import (
	"testing"
	"time"

	"savestream/pkg/calc"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name       string
		downloaded int
		total      int
		want       float64
	}{
		{name: "unknown total", downloaded: 100, total: 0, want: calc.Unknown},
		{name: "negative total", downloaded: 100, total: -1, want: calc.Unknown},
		{name: "start", downloaded: 0, total: 100, want: 0},
		{name: "partial", downloaded: 42, total: 100, want: 42},
		{name: "done", downloaded: 100, total: 100, want: 100},
		{name: "overshoot clamped", downloaded: 150, total: 100, want: 100},
		{name: "negative downloaded clamped", downloaded: -10, total: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Percent(tt.downloaded, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %v, want %v", tt.downloaded, tt.total, got, tt.want)
			}
		})
	}
}

func TestRate(t *testing.T) {
	if got := calc.Rate(0, time.Now()); got != 0 {
		t.Errorf("Rate with zero downloaded = %v, want 0", got)
	}

	if got := calc.Rate(100, time.Time{}); got != 0 {
		t.Errorf("Rate with zero start = %v, want 0", got)
	}

	got := calc.Rate(1_000_000, time.Now().Add(-1*time.Second))
	if got < 900_000 || got > 1_100_000 {
		t.Errorf("Rate = %v, want roughly 1MB/s", got)
	}
}

func TestRateText(t *testing.T) {
	tests := []struct {
		name string
		bps  float64
		want string
	}{
		{name: "bytes", bps: 512, want: "512B/s"},
		{name: "kilobytes", bps: 52_300, want: "52.3KB/s"},
		{name: "megabytes", bps: 1_200_000, want: "1.2MB/s"},
		{name: "gigabytes", bps: 2_500_000_000, want: "2.5GB/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.RateText(tt.bps); got != tt.want {
				t.Errorf("RateText(%v) = %q, want %q", tt.bps, got, tt.want)
			}
		})
	}
}

func TestETA(t *testing.T) {
	if got := calc.ETA(0, 100, time.Now()); got != calc.Unknown {
		t.Errorf("ETA with zero downloaded = %v, want Unknown", got)
	}

	if got := calc.ETA(50, 0, time.Now()); got != calc.Unknown {
		t.Errorf("ETA with unknown total = %v, want Unknown", got)
	}

	// Half done after one second leaves roughly one second to go.
	got := calc.ETA(50, 100, time.Now().Add(-1*time.Second))
	if got < 900*time.Millisecond || got > 1100*time.Millisecond {
		t.Errorf("ETA = %v, want roughly 1s", got)
	}
}
