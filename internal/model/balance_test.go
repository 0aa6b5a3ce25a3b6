package model

import "testing"

func TestStatsColumn(t *testing.T) {
	tests := []struct {
		reason TransactionReason
		want   string
	}{
		{ReasonDailyBonus, "daily_bonus_earnings"},
		{ReasonOpenCase, "total_spent"},
		{ReasonPromoCode, "promo_earnings"},
		{ReasonReferralBonus, "referral_earnings"},
		{ReasonTelegramProfile, "telegram_earnings"},
		{ReasonSteamProfile, "steam_earnings"},
		{ReasonManual, ""},
		// total_withdrawn is fed by withdrawal resolution directly, items
		// leave the inventory without a ledger entry.
		{TransactionReason("withdrawal"), ""},
	}

	for _, tt := range tests {
		if got := tt.reason.StatsColumn(); got != tt.want {
			t.Errorf("StatsColumn(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
