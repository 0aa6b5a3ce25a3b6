package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

var (
	ErrSelfReferral          = errors.New("Нельзя использовать собственный код")
	ErrAlreadyAttributed     = errors.New("Вы уже использовали реферальный код")
	ErrAttributionWindowOver = errors.New("Время для ввода реферального кода истекло")
	ErrReferrerNotFound      = errors.New("Реферальный код не найден")
)

const referralBonusSetting = "referral_bonus"

type ReferralService struct {
	repo        *repository.Repository
	botUsername string
}

func NewReferralService(repo *repository.Repository, botUsername string) *ReferralService {
	return &ReferralService{repo: repo, botUsername: botUsername}
}

// Attribute links the calling user to the owner of code and credits the
// referrer. The repository transaction enforces at-most-one referrer and
// re-checks the window under the row lock; attributable() here mirrors the
// check so callers get the precise rejection without opening a transaction.
func (s *ReferralService) Attribute(ctx context.Context, userID int64, code string) error {
	referrer, err := s.repo.GetUserByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrReferrerNotFound
		}
		return err
	}
	if referrer.ID == userID {
		return ErrSelfReferral
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.ReferredBy != nil {
		return ErrAlreadyAttributed
	}
	if !attributable(user.CreatedAt, time.Now()) {
		return ErrAttributionWindowOver
	}

	err = s.repo.AttributeReferral(ctx, referrer.ID, userID, s.bonus(ctx), config.ReferralWindow)
	switch {
	case errors.Is(err, repository.ErrAlreadyAttributed):
		return ErrAlreadyAttributed
	case errors.Is(err, repository.ErrAttributionWindowOver):
		return ErrAttributionWindowOver
	}
	return err
}

func (s *ReferralService) Info(ctx context.Context, userID int64) (*model.ReferralInfo, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	referred, err := s.repo.GetReferredUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := &model.ReferralInfo{
		ReferralCode:   user.ReferralCode,
		ReferralLink:   "https://t.me/" + s.botUsername + "?start=ref_" + user.ReferralCode,
		ReferredBy:     user.ReferredBy,
		TotalReferrals: len(referred),
		TotalEarned:    stats.ReferralEarnings,
		Referred:       referred,
	}

	if user.ReferredBy == nil {
		if left := config.ReferralWindow - time.Since(user.CreatedAt); left > 0 {
			info.WindowLeft = left.Seconds()
		}
	}

	return info, nil
}

// bonus reads the runtime-tunable referral bonus, falling back to the
// compile-time default.
func (s *ReferralService) bonus(ctx context.Context) int64 {
	value, err := s.repo.GetSettingInt(ctx, referralBonusSetting)
	if err != nil || value <= 0 {
		return config.ReferralBonus
	}
	return value
}

// SetBonus overrides the referral bonus at runtime.
func (s *ReferralService) SetBonus(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return errors.New("referral bonus must be positive")
	}
	return s.repo.SetSetting(ctx, referralBonusSetting, strconv.FormatInt(amount, 10))
}

// attributable reports whether the referred user is still inside the
// attribution window at now.
func attributable(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= config.ReferralWindow
}
