package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/cache"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

var (
	ErrPromoCodeNotFound  = errors.New("Промокод не найден")
	ErrPromoCodeExpired   = errors.New("Срок действия промокода истёк")
	ErrPromoCodeExhausted = errors.New("Лимит использований промокода исчерпан")
	ErrPromoAlreadyUsed   = errors.New("Вы уже использовали этот промокод")
	ErrPromoCodeInactive  = errors.New("Промокод неактивен")
)

type PromoService struct {
	repo  *repository.Repository
	cache *cache.Cache
}

func NewPromoService(repo *repository.Repository, c *cache.Cache) *PromoService {
	return &PromoService{repo: repo, cache: c}
}

type RedeemResult struct {
	Code       string `json:"code"`
	Points     int64  `json:"points"`
	NewBalance int64  `json:"new_balance"`
}

// Redeem activates a promo code for the user. The pre-checks here give
// precise rejection reasons; the repository transaction re-validates the
// cap and the per-user uniqueness so concurrent redemptions cannot
// both slip through.
func (s *PromoService) Redeem(ctx context.Context, userID int64, code string) (*RedeemResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	promo, err := s.repo.GetPromoCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPromoCodeNotFound) {
			return nil, ErrPromoCodeNotFound
		}
		return nil, err
	}

	if !promo.IsActive {
		return nil, ErrPromoCodeInactive
	}
	if promo.IsExpired(time.Now()) {
		return nil, ErrPromoCodeExpired
	}
	if promo.IsExhausted() {
		return nil, ErrPromoCodeExhausted
	}

	newBalance, err := s.repo.RedeemPromoCode(ctx, userID, promo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPromoAlreadyUsed):
			return nil, ErrPromoAlreadyUsed
		case errors.Is(err, repository.ErrPromoCodeExhausted):
			return nil, ErrPromoCodeExhausted
		}
		return nil, err
	}

	s.cache.InvalidatePromoList(ctx)

	return &RedeemResult{
		Code:       promo.Code,
		Points:     promo.Points,
		NewBalance: newBalance,
	}, nil
}

// ListAvailable returns active, non-exhausted codes, served from the Redis
// cache when fresh.
func (s *PromoService) ListAvailable(ctx context.Context) ([]model.AvailablePromo, error) {
	if promos, ok := s.cache.GetPromoList(ctx); ok {
		return promos, nil
	}

	codes, err := s.repo.ListAvailablePromoCodes(ctx)
	if err != nil {
		return nil, err
	}

	promos := make([]model.AvailablePromo, 0, len(codes))
	for i := range codes {
		promos = append(promos, model.AvailablePromo{
			Code:          codes[i].Code,
			Points:        codes[i].Points,
			Description:   codes[i].Description,
			RemainingUses: codes[i].RemainingUses(),
		})
	}

	s.cache.SetPromoList(ctx, promos)
	return promos, nil
}

// CreatePromoCode creates a new promo code (admin function).
func (s *PromoService) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if err := s.repo.CreatePromoCode(ctx, promo); err != nil {
		return err
	}
	s.cache.InvalidatePromoList(ctx)
	return nil
}

// DeactivatePromoCode deactivates a promo code (admin function).
func (s *PromoService) DeactivatePromoCode(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	err := s.repo.DeactivatePromoCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPromoCodeNotFound) {
			return ErrPromoCodeNotFound
		}
		return err
	}
	s.cache.InvalidatePromoList(ctx)
	return nil
}
