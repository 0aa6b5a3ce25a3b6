package model

import (
	"testing"
	"time"
)

func TestPromoCodeIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, false},
		{"future expiry", &future, false},
		{"past expiry", &past, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PromoCode{ExpiresAt: tt.expiresAt}
			if got := p.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromoCodeIsExhausted(t *testing.T) {
	tests := []struct {
		name      string
		maxUses   int
		usedCount int
		want      bool
	}{
		{"unlimited", UnlimitedUses, 1000000, false},
		{"under cap", 10, 9, false},
		{"at cap", 10, 10, true},
		{"over cap", 10, 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PromoCode{MaxUses: tt.maxUses, UsedCount: tt.usedCount}
			if got := p.IsExhausted(); got != tt.want {
				t.Errorf("IsExhausted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromoCodeRemainingUses(t *testing.T) {
	tests := []struct {
		name      string
		maxUses   int
		usedCount int
		want      int
	}{
		{"unlimited", UnlimitedUses, 5, UnlimitedUses},
		{"some left", 10, 3, 7},
		{"none left", 10, 10, 0},
		{"overused clamps to zero", 10, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PromoCode{MaxUses: tt.maxUses, UsedCount: tt.usedCount}
			if got := p.RemainingUses(); got != tt.want {
				t.Errorf("RemainingUses() = %d, want %d", got, tt.want)
			}
		})
	}
}
