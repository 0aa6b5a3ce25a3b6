package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

func (r *Repository) GetTelegramProfile(ctx context.Context, userID int64) (*model.TelegramProfile, error) {
	var profile model.TelegramProfile
	err := r.db.GetContext(ctx, &profile,
		"SELECT * FROM telegram_profiles WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// SaveTelegramCheck persists the check result and, when bonus is non-zero,
// credits or debits the ledger in the same transaction (positive on the
// unverified-to-verified transition, negative for the penalty flag).
func (r *Repository) SaveTelegramCheck(ctx context.Context, profile *model.TelegramProfile, bonus int64) (newBalance int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	earned := int64(0)
	if bonus > 0 {
		earned = bonus
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO telegram_profiles (user_id, last_name, bio, has_bot_in_lastname, has_bot_in_bio,
			is_verified, last_check, verification_date, total_earned, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			last_name = EXCLUDED.last_name,
			bio = EXCLUDED.bio,
			has_bot_in_lastname = EXCLUDED.has_bot_in_lastname,
			has_bot_in_bio = EXCLUDED.has_bot_in_bio,
			is_verified = EXCLUDED.is_verified,
			last_check = EXCLUDED.last_check,
			verification_date = COALESCE(EXCLUDED.verification_date, telegram_profiles.verification_date),
			total_earned = telegram_profiles.total_earned + $9,
			updated_at = NOW()`,
		profile.UserID, profile.LastName, profile.Bio,
		profile.HasBotInLastname, profile.HasBotInBio, profile.IsVerified,
		profile.LastCheck, profile.VerificationDate, earned)
	if err != nil {
		return 0, fmt.Errorf("failed to save telegram profile: %w", err)
	}

	newBalance, err = r.profileBonusTx(ctx, tx, profile.UserID, bonus, model.ReasonTelegramProfile)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *Repository) GetSteamProfile(ctx context.Context, userID int64) (*model.SteamProfile, error) {
	var profile model.SteamProfile
	err := r.db.GetContext(ctx, &profile,
		"SELECT * FROM steam_profiles WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) SaveSteamCheck(ctx context.Context, profile *model.SteamProfile, bonus int64) (newBalance int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	earned := int64(0)
	if bonus > 0 {
		earned = bonus
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO steam_profiles (user_id, steam_id, steam_url, profile_level, games_count,
			badges_count, profile_age_days, is_public, has_bot_in_description,
			is_verified, last_check, verification_date, total_earned, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			steam_id = EXCLUDED.steam_id,
			steam_url = EXCLUDED.steam_url,
			profile_level = EXCLUDED.profile_level,
			games_count = EXCLUDED.games_count,
			badges_count = EXCLUDED.badges_count,
			profile_age_days = EXCLUDED.profile_age_days,
			is_public = EXCLUDED.is_public,
			has_bot_in_description = EXCLUDED.has_bot_in_description,
			is_verified = EXCLUDED.is_verified,
			last_check = EXCLUDED.last_check,
			verification_date = COALESCE(EXCLUDED.verification_date, steam_profiles.verification_date),
			total_earned = steam_profiles.total_earned + $13,
			updated_at = NOW()`,
		profile.UserID, profile.SteamID, profile.SteamURL, profile.ProfileLevel,
		profile.GamesCount, profile.BadgesCount, profile.ProfileAgeDays,
		profile.IsPublic, profile.HasBotInDescription, profile.IsVerified,
		profile.LastCheck, profile.VerificationDate, earned)
	if err != nil {
		return 0, fmt.Errorf("failed to save steam profile: %w", err)
	}

	newBalance, err = r.profileBonusTx(ctx, tx, profile.UserID, bonus, model.ReasonSteamProfile)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *Repository) profileBonusTx(ctx context.Context, tx *sqlx.Tx, userID, bonus int64, reason model.TransactionReason) (int64, error) {
	var balance int64
	if err := tx.GetContext(ctx, &balance, "SELECT points FROM users WHERE id = $1 FOR UPDATE", userID); err != nil {
		return 0, err
	}

	// The profile write must commit regardless of the bonus outcome, so a
	// penalty is clamped to what the user can cover instead of tripping
	// the non-negative guard and rolling the whole check back.
	bonus = clampDebit(balance, bonus)
	if bonus == 0 {
		return balance, nil
	}

	var description string
	if bonus > 0 {
		description = fmt.Sprintf("Бонус за настройку профиля: +%d баллов", bonus)
	} else {
		description = fmt.Sprintf("Профиль больше не подтверждён: %d баллов", bonus)
	}
	_, after, err := adjustBalanceTx(ctx, tx, userID, bonus, reason, description, nil)
	return after, err
}

// clampDebit limits a negative delta so balance + delta never goes below
// zero; credits pass through unchanged.
func clampDebit(balance, delta int64) int64 {
	if delta < 0 && balance+delta < 0 {
		return -balance
	}
	return delta
}

// MarkStaleProfiles clears is_verified on profiles whose last check is
// older than the cutoff. Re-verification (and any bonus settlement)
// happens when the client next checks in.
func (r *Repository) MarkStaleProfiles(ctx context.Context, olderThan time.Time) (telegram, steam int64, err error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE telegram_profiles SET is_verified = false, updated_at = NOW()
		WHERE is_verified AND (last_check IS NULL OR last_check < $1)`, olderThan)
	if err != nil {
		return 0, 0, err
	}
	if telegram, err = res.RowsAffected(); err != nil {
		return 0, 0, err
	}

	res, err = r.db.ExecContext(ctx, `
		UPDATE steam_profiles SET is_verified = false, updated_at = NOW()
		WHERE is_verified AND (last_check IS NULL OR last_check < $1)`, olderThan)
	if err != nil {
		return telegram, 0, err
	}
	steam, err = res.RowsAffected()
	return telegram, steam, err
}
