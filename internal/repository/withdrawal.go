package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

var (
	ErrItemNotAvailable   = errors.New("item is not available for withdrawal")
	ErrWithdrawalNotFound = errors.New("withdrawal request not found")
)

// CreateWithdrawalRequest inserts the request and flips the item to
// withdrawn in one transaction. The status guard on the UPDATE makes a
// double-click on the same item fail cleanly on the second attempt.
func (r *Repository) CreateWithdrawalRequest(ctx context.Context, userID int64, itemID uuid.UUID, tradeLink string) (*model.WithdrawalRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE inventory SET status = $1, withdraw_request_date = NOW()
		WHERE id = $2 AND user_id = $3 AND status = $4`,
		model.ItemStatusWithdrawn, itemID, userID, model.ItemStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to update item status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrItemNotAvailable
	}

	request := &model.WithdrawalRequest{
		UserID:    userID,
		ItemID:    itemID,
		TradeLink: tradeLink,
		Status:    model.WithdrawalStatusPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO withdrawal_requests (user_id, item_id, trade_link)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		userID, itemID, tradeLink,
	).Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return request, nil
}

func (r *Repository) GetWithdrawalRequest(ctx context.Context, id uuid.UUID) (*model.WithdrawalRequest, error) {
	var request model.WithdrawalRequest
	err := r.db.GetContext(ctx, &request,
		"SELECT * FROM withdrawal_requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *Repository) ListWithdrawalRequests(ctx context.Context, status model.WithdrawalStatus, limit, offset int) ([]model.WithdrawalRequest, error) {
	requests := []model.WithdrawalRequest{}
	err := r.db.SelectContext(ctx, &requests, `
		SELECT * FROM withdrawal_requests
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3`, status, limit, offset)
	return requests, err
}

// ResolveWithdrawalRequest completes or rejects a pending request. A
// rejection returns the item to the user's available inventory.
func (r *Repository) ResolveWithdrawalRequest(ctx context.Context, id uuid.UUID, status model.WithdrawalStatus, notes string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemID uuid.UUID
	var userID int64
	err = tx.QueryRowContext(ctx, `
		UPDATE withdrawal_requests SET status = $1, admin_notes = NULLIF($2, ''), processed_at = $3
		WHERE id = $4 AND status = $5
		RETURNING item_id, user_id`,
		status, notes, time.Now(), id, model.WithdrawalStatusPending,
	).Scan(&itemID, &userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWithdrawalNotFound
		}
		return err
	}

	switch status {
	case model.WithdrawalStatusRejected:
		_, err = tx.ExecContext(ctx, `
			UPDATE inventory SET status = $1, withdraw_request_date = NULL
			WHERE id = $2`, model.ItemStatusAvailable, itemID)
		if err != nil {
			return fmt.Errorf("failed to restore item: %w", err)
		}
	case model.WithdrawalStatusCompleted:
		_, err = tx.ExecContext(ctx, `
			UPDATE user_stats SET total_withdrawn = user_stats.total_withdrawn + i.item_price, updated_at = NOW()
			FROM inventory i
			WHERE i.id = $1 AND user_stats.user_id = $2`, itemID, userID)
		if err != nil {
			return fmt.Errorf("failed to update withdrawal stats: %w", err)
		}
	}

	return tx.Commit()
}
