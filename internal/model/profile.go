package model

import (
	"time"
)

// Profile fields are asserted by the client. The server evaluates the
// predicate over what it was told and never contacts Telegram or Steam;
// verification is a cosmetic gate, not proof.

type TelegramProfile struct {
	UserID           int64      `json:"user_id" db:"user_id"`
	LastName         *string    `json:"last_name,omitempty" db:"last_name"`
	Bio              *string    `json:"bio,omitempty" db:"bio"`
	HasBotInLastname bool       `json:"has_bot_in_lastname" db:"has_bot_in_lastname"`
	HasBotInBio      bool       `json:"has_bot_in_bio" db:"has_bot_in_bio"`
	IsVerified       bool       `json:"is_verified" db:"is_verified"`
	LastCheck        *time.Time `json:"last_check,omitempty" db:"last_check"`
	VerificationDate *time.Time `json:"verification_date,omitempty" db:"verification_date"`
	TotalEarned      int64      `json:"total_earned" db:"total_earned"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type SteamProfile struct {
	UserID              int64      `json:"user_id" db:"user_id"`
	SteamID             *string    `json:"steam_id,omitempty" db:"steam_id"`
	SteamURL            *string    `json:"steam_url,omitempty" db:"steam_url"`
	ProfileLevel        int        `json:"profile_level" db:"profile_level"`
	GamesCount          int        `json:"games_count" db:"games_count"`
	BadgesCount         int        `json:"badges_count" db:"badges_count"`
	ProfileAgeDays      int        `json:"profile_age_days" db:"profile_age_days"`
	IsPublic            bool       `json:"is_public" db:"is_public"`
	HasBotInDescription bool       `json:"has_bot_in_description" db:"has_bot_in_description"`
	IsVerified          bool       `json:"is_verified" db:"is_verified"`
	LastCheck           *time.Time `json:"last_check,omitempty" db:"last_check"`
	VerificationDate    *time.Time `json:"verification_date,omitempty" db:"verification_date"`
	TotalEarned         int64      `json:"total_earned" db:"total_earned"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}
