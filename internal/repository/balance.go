package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

// InsufficientBalanceError is a business outcome, not a system failure:
// callers must be able to tell "not enough points" from a broken store.
type InsufficientBalanceError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d, need %d", e.Balance, e.Required)
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, "SELECT points FROM users WHERE id = $1", userID)
	return balance, err
}

// AdjustBalance applies delta to the user's points inside its own
// transaction. See adjustBalanceTx for the invariants.
func (r *Repository) AdjustBalance(ctx context.Context, userID, delta int64, reason model.TransactionReason, description string, referenceID *uuid.UUID) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, after, err := adjustBalanceTx(ctx, tx, userID, delta, reason, description, referenceID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}

// adjustBalanceTx mutates the ledger inside an open transaction: locks the
// user row, rejects any delta that would take points below zero, updates
// the per-reason user_stats total, and appends an immutable
// balance_transactions row. Composite operations (case opening, promo
// redemption, referral attribution, daily bonus) call this so the debit or
// credit commits together with their own writes.
func adjustBalanceTx(ctx context.Context, tx *sqlx.Tx, userID, delta int64, reason model.TransactionReason, description string, referenceID *uuid.UUID) (before, after int64, err error) {
	err = tx.GetContext(ctx, &before, "SELECT points FROM users WHERE id = $1 FOR UPDATE", userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get balance: %w", err)
	}

	after = before + delta
	if after < 0 {
		return before, before, &InsufficientBalanceError{Balance: before, Required: -delta}
	}

	earned := int64(0)
	if delta > 0 {
		earned = delta
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET points = $1, total_earned = total_earned + $2, last_active = NOW()
		WHERE id = $3`, after, earned, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if col := reason.StatsColumn(); col != "" {
		abs := delta
		if abs < 0 {
			abs = -abs
		}
		// col comes from the fixed TransactionReason mapping, never from input.
		query := fmt.Sprintf(`
			UPDATE user_stats SET %s = %s + $1, total_earned = total_earned + $2, updated_at = NOW()
			WHERE user_id = $3`, col, col)
		if _, err = tx.ExecContext(ctx, query, abs, earned, userID); err != nil {
			return 0, 0, fmt.Errorf("failed to update stats: %w", err)
		}
	}

	var desc *string
	if description != "" {
		desc = &description
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO balance_transactions (user_id, amount, reason, description, reference_id, balance_before, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, delta, reason, desc, referenceID, before, after)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create transaction record: %w", err)
	}

	return before, after, nil
}

func (r *Repository) GetBalanceTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.BalanceTransaction, error) {
	var transactions []model.BalanceTransaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM balance_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return transactions, err
}

func (r *Repository) GetUserStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.db.GetContext(ctx, &stats, "SELECT * FROM user_stats WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
