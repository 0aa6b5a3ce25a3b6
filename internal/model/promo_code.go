package model

import (
	"time"

	"github.com/google/uuid"
)

// UnlimitedUses marks a promo code without a usage cap.
const UnlimitedUses = -1

type PromoCode struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	Points      int64      `json:"points" db:"points"`
	MaxUses     int        `json:"max_uses" db:"max_uses"`
	UsedCount   int        `json:"used_count" db:"used_count"`
	Description *string    `json:"description,omitempty" db:"description"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

func (p *PromoCode) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

func (p *PromoCode) IsExhausted() bool {
	return p.MaxUses != UnlimitedUses && p.UsedCount >= p.MaxUses
}

// RemainingUses returns the uses left, or UnlimitedUses for uncapped codes.
func (p *PromoCode) RemainingUses() int {
	if p.MaxUses == UnlimitedUses {
		return UnlimitedUses
	}
	remaining := p.MaxUses - p.UsedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

type PromoCodeUse struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PromoCodeID uuid.UUID `json:"promo_code_id" db:"promo_code_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AvailablePromo is the public shape for GET /api/available-promos.
type AvailablePromo struct {
	Code          string  `json:"code"`
	Points        int64   `json:"points"`
	Description   *string `json:"description,omitempty"`
	RemainingUses int     `json:"remaining_uses"` // -1 = unlimited
}
