package model

import (
	"time"

	"github.com/google/uuid"
)

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusWithdrawn ItemStatus = "withdrawn"
)

type InventoryItem struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	UserID              int64      `json:"user_id" db:"user_id"`
	ItemName            string     `json:"item_name" db:"item_name"`
	ItemType            string     `json:"item_type" db:"item_type"`
	ItemRarity          string     `json:"item_rarity" db:"item_rarity"`
	ItemPrice           int64      `json:"item_price" db:"item_price"`
	CasePrice           int64      `json:"case_price" db:"case_price"`
	Status              ItemStatus `json:"status" db:"status"`
	WithdrawRequestDate *time.Time `json:"withdraw_request_date,omitempty" db:"withdraw_request_date"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}
