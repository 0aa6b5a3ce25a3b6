package service

import (
	"testing"
	"time"
)

func TestAttributable(t *testing.T) {
	createdAt := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"immediately after registration", 0, true},
		{"just inside the window", 299 * time.Second, true},
		{"exactly at the window", 300 * time.Second, true},
		{"just past the window", 301 * time.Second, false},
		{"hours later", 3 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := createdAt.Add(tt.elapsed)
			if got := attributable(createdAt, now); got != tt.want {
				t.Errorf("attributable(+%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}
