package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionReason string

const (
	ReasonDailyBonus      TransactionReason = "daily_bonus"
	ReasonOpenCase        TransactionReason = "open_case"
	ReasonPromoCode       TransactionReason = "promo_code"
	ReasonReferralBonus   TransactionReason = "referral_bonus"
	ReasonTelegramProfile TransactionReason = "telegram_profile"
	ReasonSteamProfile    TransactionReason = "steam_profile"
	ReasonManual          TransactionReason = "manual"
)

// StatsColumn maps a transaction reason to the user_stats running total
// it feeds, or "" when the reason is not tracked per-reason.
func (r TransactionReason) StatsColumn() string {
	switch r {
	case ReasonDailyBonus:
		return "daily_bonus_earnings"
	case ReasonOpenCase:
		return "total_spent"
	case ReasonPromoCode:
		return "promo_earnings"
	case ReasonReferralBonus:
		return "referral_earnings"
	case ReasonTelegramProfile:
		return "telegram_earnings"
	case ReasonSteamProfile:
		return "steam_earnings"
	}
	return ""
}

type BalanceTransaction struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	UserID        int64             `json:"user_id" db:"user_id"`
	Amount        int64             `json:"amount" db:"amount"` // positive = credit, negative = debit
	Reason        TransactionReason `json:"reason" db:"reason"`
	Description   *string           `json:"description,omitempty" db:"description"`
	ReferenceID   *uuid.UUID        `json:"reference_id,omitempty" db:"reference_id"`
	BalanceBefore int64             `json:"balance_before" db:"balance_before"`
	BalanceAfter  int64             `json:"balance_after" db:"balance_after"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
}
