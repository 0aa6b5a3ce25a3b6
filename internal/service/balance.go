package service

import (
	"context"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

type BalanceService struct {
	repo *repository.Repository
}

func NewBalanceService(repo *repository.Repository) *BalanceService {
	return &BalanceService{repo: repo}
}

func (s *BalanceService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.repo.GetUserBalance(ctx, userID)
}

// CreditManual is the admin adjustment path.
func (s *BalanceService) CreditManual(ctx context.Context, userID, amount int64, description string) (int64, error) {
	return s.repo.AdjustBalance(ctx, userID, amount, model.ReasonManual, description, nil)
}

func (s *BalanceService) GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.BalanceTransaction, error) {
	limit, offset = clampPage(limit, offset, 20)
	return s.repo.GetBalanceTransactions(ctx, userID, limit, offset)
}

// clampPage sanitizes client-supplied pagination: limit falls back to def
// and caps at 100, a negative offset becomes 0 (Postgres rejects it).
func clampPage(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *BalanceService) GetStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	return s.repo.GetUserStats(ctx, userID)
}
