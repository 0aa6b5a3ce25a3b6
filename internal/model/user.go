package model

import (
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     *string   `json:"username,omitempty" db:"username"`
	FirstName    *string   `json:"first_name,omitempty" db:"first_name"`
	LastName     *string   `json:"last_name,omitempty" db:"last_name"`
	LanguageCode *string   `json:"language_code,omitempty" db:"language_code"`
	Points       int64     `json:"points" db:"points"`
	TotalEarned  int64     `json:"total_earned" db:"total_earned"`
	ReferralCode string    `json:"referral_code" db:"referral_code"`
	ReferredBy   *int64    `json:"referred_by,omitempty" db:"referred_by"`
	TradeLink    *string   `json:"trade_link,omitempty" db:"trade_link"`
	IsSubscribed bool      `json:"is_subscribed" db:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LastActive   time.Time `json:"last_active" db:"last_active"`
}

// UserSnapshot is the GET /api/user payload.
type UserSnapshot struct {
	User
	Inventory           []InventoryItem `json:"inventory"`
	ReferralsCount      int             `json:"referrals_count"`
	TelegramVerified    bool            `json:"telegram_verified"`
	SteamVerified       bool            `json:"steam_verified"`
	DailyBonusAvailable bool            `json:"daily_bonus_available"`
}

type UserStats struct {
	UserID             int64     `json:"user_id" db:"user_id"`
	TotalCasesOpened   int64     `json:"total_cases_opened" db:"total_cases_opened"`
	TotalSpent         int64     `json:"total_spent" db:"total_spent"`
	TotalEarned        int64     `json:"total_earned" db:"total_earned"`
	TotalWithdrawn     int64     `json:"total_withdrawn" db:"total_withdrawn"`
	ReferralEarnings   int64     `json:"referral_earnings" db:"referral_earnings"`
	TelegramEarnings   int64     `json:"telegram_earnings" db:"telegram_earnings"`
	SteamEarnings      int64     `json:"steam_earnings" db:"steam_earnings"`
	DailyBonusEarnings int64     `json:"daily_bonus_earnings" db:"daily_bonus_earnings"`
	PromoEarnings      int64     `json:"promo_earnings" db:"promo_earnings"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}
