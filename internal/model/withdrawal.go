package model

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
	WithdrawalStatusRejected   WithdrawalStatus = "rejected"
)

type WithdrawalRequest struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      int64            `json:"user_id" db:"user_id"`
	ItemID      uuid.UUID        `json:"item_id" db:"item_id"`
	TradeLink   string           `json:"trade_link" db:"trade_link"`
	Status      WithdrawalStatus `json:"status" db:"status"`
	AdminNotes  *string          `json:"admin_notes,omitempty" db:"admin_notes"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty" db:"processed_at"`
}
