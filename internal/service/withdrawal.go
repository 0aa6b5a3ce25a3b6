package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

var (
	ErrInvalidTradeLink = errors.New("Некорректная трейд-ссылка")
	ErrNoTradeLink      = errors.New("Сначала укажите трейд-ссылку")
	ErrItemNotAvailable = errors.New("Предмет недоступен для вывода")
)

var tradeLinkRe = regexp.MustCompile(`^https://steamcommunity\.com/tradeoffer/new/\?partner=(\d+)&token=[\w-]+$`)

// WithdrawalNotifier delivers best-effort notifications when a request is
// created; delivery failures never fail the withdrawal.
type WithdrawalNotifier interface {
	NotifyWithdrawal(request *model.WithdrawalRequest, item *model.InventoryItem)
}

type WithdrawalService struct {
	repo     *repository.Repository
	notifier WithdrawalNotifier
}

func NewWithdrawalService(repo *repository.Repository, notifier WithdrawalNotifier) *WithdrawalService {
	return &WithdrawalService{repo: repo, notifier: notifier}
}

// SetTradeLink validates and stores the user's Steam trade link.
func (s *WithdrawalService) SetTradeLink(ctx context.Context, userID int64, tradeLink string) error {
	tradeLink = strings.TrimSpace(tradeLink)
	if !ValidTradeLink(tradeLink) {
		return ErrInvalidTradeLink
	}
	return s.repo.SetTradeLink(ctx, userID, tradeLink)
}

// RequestWithdrawal creates a pending request for an available inventory
// item and marks the item withdrawn.
func (s *WithdrawalService) RequestWithdrawal(ctx context.Context, userID int64, itemID uuid.UUID) (*model.WithdrawalRequest, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TradeLink == nil || *user.TradeLink == "" {
		return nil, ErrNoTradeLink
	}

	item, err := s.repo.GetInventoryItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != model.ItemStatusAvailable {
		return nil, ErrItemNotAvailable
	}

	request, err := s.repo.CreateWithdrawalRequest(ctx, userID, itemID, *user.TradeLink)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotAvailable) {
			return nil, ErrItemNotAvailable
		}
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.NotifyWithdrawal(request, item)
	}

	return request, nil
}

func (s *WithdrawalService) GetInventory(ctx context.Context, userID int64) ([]model.InventoryItem, error) {
	return s.repo.GetInventory(ctx, userID)
}

// ListPending is the admin queue view.
func (s *WithdrawalService) ListPending(ctx context.Context, limit, offset int) ([]model.WithdrawalRequest, error) {
	limit, offset = clampPage(limit, offset, 50)
	return s.repo.ListWithdrawalRequests(ctx, model.WithdrawalStatusPending, limit, offset)
}

// Resolve completes or rejects a pending request.
func (s *WithdrawalService) Resolve(ctx context.Context, id uuid.UUID, approve bool, notes string) error {
	status := model.WithdrawalStatusCompleted
	if !approve {
		status = model.WithdrawalStatusRejected
	}
	if err := s.repo.ResolveWithdrawalRequest(ctx, id, status, notes); err != nil {
		return err
	}
	log.Printf("Withdrawal %s resolved: %s", id, status)
	return nil
}

// ValidTradeLink reports whether the link is a steamcommunity trade offer
// URL with partner and token parameters.
func ValidTradeLink(link string) bool {
	return tradeLinkRe.MatchString(link)
}

// TradeLinkPartner extracts the partner id from a valid trade link.
func TradeLinkPartner(link string) (string, bool) {
	m := tradeLinkRe.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}
