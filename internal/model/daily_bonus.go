package model

import (
	"time"

	"github.com/google/uuid"
)

type DailyBonus struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	BonusDate time.Time `json:"bonus_date" db:"bonus_date"`
	Points    int64     `json:"points" db:"points"`
	Streak    int       `json:"streak" db:"streak"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
