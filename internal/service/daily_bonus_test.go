package service

import (
	"testing"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		latest     *model.DailyBonus
		wantStreak int
		wantOK     bool
	}{
		{
			name:       "first claim ever",
			latest:     nil,
			wantStreak: 1,
			wantOK:     true,
		},
		{
			name: "already claimed today",
			latest: &model.DailyBonus{
				BonusDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
				Streak:    4,
			},
			wantOK: false,
		},
		{
			name: "claimed today at a different hour",
			latest: &model.DailyBonus{
				BonusDate: time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC),
				Streak:    1,
			},
			wantOK: false,
		},
		{
			name: "consecutive day extends streak",
			latest: &model.DailyBonus{
				BonusDate: time.Date(2025, 6, 9, 2, 0, 0, 0, time.UTC),
				Streak:    4,
			},
			wantStreak: 5,
			wantOK:     true,
		},
		{
			name: "gap resets streak",
			latest: &model.DailyBonus{
				BonusDate: time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
				Streak:    12,
			},
			wantStreak: 1,
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, ok := nextStreak(tt.latest, now)
			if ok != tt.wantOK {
				t.Fatalf("nextStreak() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && streak != tt.wantStreak {
				t.Errorf("nextStreak() streak = %d, want %d", streak, tt.wantStreak)
			}
		})
	}
}

func TestBonusAmount(t *testing.T) {
	// Pin the base draw to its minimum so only the streak part varies.
	minDraw := func(int64) int64 { return 0 }

	tests := []struct {
		streak int
		want   int64
	}{
		{1, config.DailyBonusMin},
		{2, config.DailyBonusMin + 10},
		{5, config.DailyBonusMin + 40},
		{11, config.DailyBonusMin + 100},
		{50, config.DailyBonusMin + 100}, // streak bonus caps out
	}

	for _, tt := range tests {
		if got := bonusAmount(tt.streak, minDraw); got != tt.want {
			t.Errorf("bonusAmount(%d) = %d, want %d", tt.streak, got, tt.want)
		}
	}
}

func TestBonusAmountBounds(t *testing.T) {
	maxDraw := func(n int64) int64 { return n - 1 }

	got := bonusAmount(1, maxDraw)
	if got != config.DailyBonusMax {
		t.Errorf("bonusAmount(1) with max draw = %d, want %d", got, config.DailyBonusMax)
	}
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 45, 0, time.UTC)
	want := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if got := nextMidnight(now); !got.Equal(want) {
		t.Errorf("nextMidnight() = %v, want %v", got, want)
	}
}
