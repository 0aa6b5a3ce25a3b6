package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

var (
	ErrReferralNotFound      = errors.New("referral not found")
	ErrAlreadyAttributed     = errors.New("user already has a referrer")
	ErrAttributionWindowOver = errors.New("referral attribution window closed")
)

// AttributeReferral links a new user to their referrer and credits the
// bonus, all in one transaction keyed on the referred user's row lock.
// The UNIQUE constraint on referrals.referred_id is the backstop for
// concurrent attributions slipping past the referred_by check.
func (r *Repository) AttributeReferral(ctx context.Context, referrerID, referredID, bonus int64, window time.Duration) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referredBy *int64
	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		"SELECT referred_by, created_at FROM users WHERE id = $1 FOR UPDATE", referredID,
	).Scan(&referredBy, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if referredBy != nil {
		return ErrAlreadyAttributed
	}
	if time.Since(createdAt) > window {
		return ErrAttributionWindowOver
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO referrals (referrer_id, referred_id, bonus_received)
		VALUES ($1, $2, true)`, referrerID, referredID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAttributed
		}
		return fmt.Errorf("failed to create referral: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE users SET referred_by = $1 WHERE id = $2", referrerID, referredID)
	if err != nil {
		return fmt.Errorf("failed to link referrer: %w", err)
	}

	description := fmt.Sprintf("Реферальный бонус за приглашение: +%d баллов", bonus)
	if _, _, err = adjustBalanceTx(ctx, tx, referrerID, bonus, model.ReasonReferralBonus, description, nil); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetReferralByReferredID(ctx context.Context, referredID int64) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.GetContext(ctx, &referral,
		"SELECT * FROM referrals WHERE referred_id = $1", referredID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

func (r *Repository) CountReferrals(ctx context.Context, referrerID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM referrals WHERE referrer_id = $1", referrerID)
	return count, err
}

func (r *Repository) GetReferredUsers(ctx context.Context, referrerID int64) ([]model.User, error) {
	users := []model.User{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.* FROM users u
		INNER JOIN referrals r ON r.referred_id = u.id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at DESC`, referrerID)
	return users, err
}
