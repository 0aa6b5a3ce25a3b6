package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/cases"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

var ErrUnknownCase = errors.New("Кейс с такой ценой не найден")

type CaseService struct {
	repo    *repository.Repository
	catalog cases.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCaseService(repo *repository.Repository, catalog cases.Catalog) *CaseService {
	return &CaseService{
		repo:    repo,
		catalog: catalog,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type OpenResult struct {
	Item       model.InventoryItem `json:"item"`
	NewBalance int64               `json:"new_balance"`
}

// OpenCase draws a reward for the tier and runs the debit-plus-insert
// transaction. Unknown tiers are rejected before any mutation; an
// insufficient balance surfaces as *repository.InsufficientBalanceError.
func (s *CaseService) OpenCase(ctx context.Context, userID, price int64) (*OpenResult, error) {
	s.mu.Lock()
	item, itemPrice, ok := s.catalog.Draw(price, s.rng)
	s.mu.Unlock()
	if !ok {
		return nil, ErrUnknownCase
	}

	invItem := model.InventoryItem{
		ItemName:   item.Name,
		ItemType:   item.Type,
		ItemRarity: item.Rarity,
		ItemPrice:  itemPrice,
		CasePrice:  price,
	}

	newBalance, err := s.repo.OpenCase(ctx, userID, &invItem)
	if err != nil {
		return nil, err
	}

	return &OpenResult{Item: invItem, NewBalance: newBalance}, nil
}

// Prices returns the catalog tiers for the client.
func (s *CaseService) Prices() []int64 {
	return s.catalog.Prices()
}
