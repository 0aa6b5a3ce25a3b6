package service

import (
	"testing"
	"time"
)

func TestStaleCutoff(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		interval time.Duration
		want     time.Time
	}{
		{"daily recheck", 24 * time.Hour, time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)},
		{"hourly recheck", time.Hour, time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := staleCutoff(now, tt.interval)
			if !got.Equal(tt.want) {
				t.Errorf("staleCutoff(%v) = %v, want %v", tt.interval, got, tt.want)
			}
			// The cutoff must sit in the past, a profile checked right now
			// is never stale.
			if !got.Before(now) {
				t.Errorf("staleCutoff(%v) = %v is not before now", tt.interval, got)
			}
		})
	}
}
