package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

func (r *Repository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts the user row together with its stats and profile
// companion rows. The starting balance comes from the column default.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (id, username, first_name, last_name, language_code, referral_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING points, total_earned, created_at, last_active`

	err = tx.QueryRowContext(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
		user.ReferralCode,
	).Scan(&user.Points, &user.TotalEarned, &user.CreatedAt, &user.LastActive)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "INSERT INTO user_stats (user_id) VALUES ($1)", user.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO telegram_profiles (user_id) VALUES ($1)", user.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO steam_profiles (user_id) VALUES ($1)", user.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// TouchUser refreshes the mutable identity fields and last_active on every
// authenticated request.
func (r *Repository) TouchUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			username = $2,
			first_name = $3,
			last_name = $4,
			language_code = $5,
			last_active = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)
	return err
}

func (r *Repository) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE referral_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) SetTradeLink(ctx context.Context, userID int64, tradeLink string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET trade_link = $1, last_active = NOW() WHERE id = $2", tradeLink, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repository) SetSubscribed(ctx context.Context, userID int64, subscribed bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_subscribed = $1 WHERE id = $2", subscribed, userID)
	return err
}
