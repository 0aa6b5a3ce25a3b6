package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

var ErrBonusAlreadyClaimed = errors.New("daily bonus already claimed today")

func (r *Repository) GetLatestDailyBonus(ctx context.Context, userID int64) (*model.DailyBonus, error) {
	var bonus model.DailyBonus
	err := r.db.GetContext(ctx, &bonus, `
		SELECT * FROM daily_bonuses
		WHERE user_id = $1
		ORDER BY bonus_date DESC
		LIMIT 1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bonus, nil
}

// ClaimDailyBonus inserts the day's record and credits the ledger together.
// UNIQUE(user_id, bonus_date) turns a same-day double claim into
// ErrBonusAlreadyClaimed even when two requests race.
func (r *Repository) ClaimDailyBonus(ctx context.Context, userID int64, day time.Time, points int64, streak int) (newBalance int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO daily_bonuses (user_id, bonus_date, points, streak)
		VALUES ($1, $2, $3, $4)`,
		userID, day.Format("2006-01-02"), points, streak)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrBonusAlreadyClaimed
		}
		return 0, fmt.Errorf("failed to record daily bonus: %w", err)
	}

	description := fmt.Sprintf("Ежедневный бонус (серия %d): +%d баллов", streak, points)
	_, after, err := adjustBalanceTx(ctx, tx, userID, points, model.ReasonDailyBonus, description, nil)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}
