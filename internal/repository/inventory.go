package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
)

var ErrItemNotFound = errors.New("item not found")

func (r *Repository) GetInventory(ctx context.Context, userID int64) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM inventory
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC`,
		userID, model.ItemStatusAvailable)
	return items, err
}

func (r *Repository) GetInventoryItem(ctx context.Context, userID int64, itemID uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM inventory WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// OpenCase debits the case price and inserts the won item in one
// transaction: either the user pays and owns the item, or nothing happened.
func (r *Repository) OpenCase(ctx context.Context, userID int64, item *model.InventoryItem) (newBalance int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	description := fmt.Sprintf("Открытие кейса за %d баллов", item.CasePrice)
	_, after, err := adjustBalanceTx(ctx, tx, userID, -item.CasePrice, model.ReasonOpenCase, description, nil)
	if err != nil {
		return 0, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO inventory (user_id, item_name, item_type, item_rarity, item_price, case_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at`,
		userID, item.ItemName, item.ItemType, item.ItemRarity, item.ItemPrice, item.CasePrice,
	).Scan(&item.ID, &item.Status, &item.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert inventory item: %w", err)
	}
	item.UserID = userID

	_, err = tx.ExecContext(ctx, `
		UPDATE user_stats SET total_cases_opened = total_cases_opened + 1, updated_at = NOW()
		WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to update stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}
