package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

var (
	ErrPromoCodeNotFound  = errors.New("promo code not found")
	ErrPromoAlreadyUsed   = errors.New("promo code already used by this user")
	ErrPromoCodeExhausted = errors.New("promo code usage limit reached")
)

func (r *Repository) GetPromoCodeByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := r.db.GetContext(ctx, &promo, "SELECT * FROM promo_codes WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromoCodeNotFound
		}
		return nil, err
	}
	return &promo, nil
}

// RedeemPromoCode performs the whole redemption atomically: the per-user
// usage record, the guarded usage-counter increment, and the ledger credit
// commit together. Two concurrent redemptions of a code with one use left
// race on the guarded UPDATE; exactly one sees a row change.
func (r *Repository) RedeemPromoCode(ctx context.Context, userID int64, promo *model.PromoCode) (newBalance int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO promo_code_uses (promo_code_id, user_id)
		VALUES ($1, $2)`, promo.ID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrPromoAlreadyUsed
		}
		return 0, fmt.Errorf("failed to record promo code use: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE promo_codes SET used_count = used_count + 1
		WHERE id = $1 AND is_active
		  AND (max_uses = $2 OR used_count < max_uses)
		  AND (expires_at IS NULL OR expires_at > NOW())`,
		promo.ID, model.UnlimitedUses)
	if err != nil {
		return 0, fmt.Errorf("failed to increment used count: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrPromoCodeExhausted
	}

	description := fmt.Sprintf("Промокод %s: +%d баллов", promo.Code, promo.Points)
	_, after, err := adjustBalanceTx(ctx, tx, userID, promo.Points, model.ReasonPromoCode, description, &promo.ID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}

func (r *Repository) HasUserUsedPromoCode(ctx context.Context, userID int64, promo *model.PromoCode) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM promo_code_uses
		WHERE user_id = $1 AND promo_code_id = $2`, userID, promo.ID)
	return count > 0, err
}

// ListAvailablePromoCodes returns active, unexpired codes with uses left.
func (r *Repository) ListAvailablePromoCodes(ctx context.Context) ([]model.PromoCode, error) {
	promos := []model.PromoCode{}
	err := r.db.SelectContext(ctx, &promos, `
		SELECT * FROM promo_codes
		WHERE is_active
		  AND (max_uses = $1 OR used_count < max_uses)
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at`, model.UnlimitedUses)
	return promos, err
}

func (r *Repository) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO promo_codes (code, points, max_uses, description, is_active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, used_count, created_at`,
		promo.Code, promo.Points, promo.MaxUses, promo.Description, promo.IsActive, promo.ExpiresAt,
	).Scan(&promo.ID, &promo.UsedCount, &promo.CreatedAt)
}

func (r *Repository) DeactivatePromoCode(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE promo_codes SET is_active = false WHERE code = $1", code)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPromoCodeNotFound
	}
	return nil
}
