package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

var ErrBonusAlreadyClaimed = errors.New("Бонус уже получен сегодня")

type DailyBonusService struct {
	repo *repository.Repository
}

func NewDailyBonusService(repo *repository.Repository) *DailyBonusService {
	return &DailyBonusService{repo: repo}
}

type ClaimResult struct {
	Bonus         int64     `json:"bonus"`
	Streak        int       `json:"streak"`
	NewBalance    int64     `json:"new_balance"`
	NextAvailable time.Time `json:"next_available"`
}

// Claim awards the day's bonus. Eligibility is calendar-day granular:
// a record for today means already claimed, regardless of clock time.
func (s *DailyBonusService) Claim(ctx context.Context, userID int64) (*ClaimResult, error) {
	now := time.Now()

	latest, err := s.repo.GetLatestDailyBonus(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, ok := nextStreak(latest, now)
	if !ok {
		return nil, ErrBonusAlreadyClaimed
	}

	amount := bonusAmount(streak, rand.Int63n)

	newBalance, err := s.repo.ClaimDailyBonus(ctx, userID, now, amount, streak)
	if err != nil {
		if errors.Is(err, repository.ErrBonusAlreadyClaimed) {
			return nil, ErrBonusAlreadyClaimed
		}
		return nil, err
	}

	return &ClaimResult{
		Bonus:         amount,
		Streak:        streak,
		NewBalance:    newBalance,
		NextAvailable: nextMidnight(now),
	}, nil
}

// Available reports whether the user can claim today without mutating
// anything; used by the user snapshot.
func (s *DailyBonusService) Available(ctx context.Context, userID int64) (bool, error) {
	latest, err := s.repo.GetLatestDailyBonus(ctx, userID)
	if err != nil {
		return false, err
	}
	_, ok := nextStreak(latest, time.Now())
	return ok, nil
}

func (s *DailyBonusService) NextAvailable(now time.Time) time.Time {
	return nextMidnight(now)
}

// nextStreak computes today's streak value from the latest record.
// ok is false when today's bonus is already claimed. The streak continues
// only when the previous claim was exactly yesterday.
func nextStreak(latest *model.DailyBonus, now time.Time) (streak int, ok bool) {
	if latest == nil {
		return 1, true
	}

	today := calendarDay(now)
	last := calendarDay(latest.BonusDate)

	switch today.Sub(last) {
	case 0:
		return 0, false
	case 24 * time.Hour:
		return latest.Streak + 1, true
	default:
		return 1, true
	}
}

// bonusAmount draws the base bonus and adds the capped streak bonus.
// randInt63n is injected so tests can pin the draw.
func bonusAmount(streak int, randInt63n func(int64) int64) int64 {
	base := config.DailyBonusMin + randInt63n(config.DailyBonusMax-config.DailyBonusMin+1)
	streakBonus := int64(streak-1) * config.DailyStreakStep
	if streakBonus > config.DailyStreakCap {
		streakBonus = config.DailyStreakCap
	}
	return base + streakBonus
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nextMidnight(now time.Time) time.Time {
	return calendarDay(now).Add(24 * time.Hour)
}
