package model

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ReferrerID    int64     `json:"referrer_id" db:"referrer_id"`
	ReferredID    int64     `json:"referred_id" db:"referred_id"`
	BonusReceived bool      `json:"bonus_received" db:"bonus_received"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type ReferralInfo struct {
	ReferralCode   string  `json:"referral_code"`
	ReferralLink   string  `json:"referral_link"`
	ReferredBy     *int64  `json:"referred_by,omitempty"`
	TotalReferrals int     `json:"total_referrals"`
	TotalEarned    int64   `json:"total_earned"`
	Referred       []User  `json:"referred"`
	WindowLeft     float64 `json:"window_left_seconds"` // seconds left to enter a code, 0 when closed
}
