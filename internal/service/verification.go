package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

var ErrInvalidSteamURL = errors.New("Некорректная ссылка на профиль Steam")

var (
	steamProfileIDRe = regexp.MustCompile(`steamcommunity\.com/profiles/(\d+)`)
	steamVanityURLRe = regexp.MustCompile(`steamcommunity\.com/id/([\w-]+)`)
	botHandleAliases = []string{"@rancasebot", "rancasebot"}
)

const minSteamLevel = 3

// VerificationService evaluates the profile predicates over what the
// client asserts. It never calls Telegram or Steam itself.
type VerificationService struct {
	repo    *repository.Repository
	penalty bool
}

func NewVerificationService(repo *repository.Repository, cfg *config.Config) *VerificationService {
	return &VerificationService{repo: repo, penalty: cfg.Game.VerificationPenalty}
}

type TelegramCheck struct {
	LastName string `json:"last_name"`
	Bio      string `json:"bio"`
}

type SteamCheck struct {
	SteamURL     string `json:"steam_url"`
	ProfileLevel int    `json:"profile_level"`
	GamesCount   int    `json:"games_count"`
	BadgesCount  int    `json:"badges_count"`
	IsPublic     bool   `json:"is_public"`
	Description  string `json:"description"`
}

type CheckResult struct {
	Verified      bool  `json:"verified"`
	BonusAwarded  int64 `json:"bonus_awarded"`
	PenaltyTaken  int64 `json:"penalty_taken"`
	NewBalance    int64 `json:"new_balance"`
	AlreadyEarned bool  `json:"already_earned"`
}

// CheckTelegram re-evaluates the Telegram predicate and settles the
// bonus: a one-time credit on the first unverified-to-verified
// transition, and an optional debit of the same amount when a verified
// profile stops matching.
func (s *VerificationService) CheckTelegram(ctx context.Context, userID int64, check TelegramCheck) (*CheckResult, error) {
	prev, err := s.repo.GetTelegramProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	inLastname := containsBotHandle(check.LastName)
	inBio := containsBotHandle(check.Bio)
	verified := inLastname && inBio

	now := time.Now()
	profile := &model.TelegramProfile{
		UserID:           userID,
		LastName:         OptionalString(check.LastName),
		Bio:              OptionalString(check.Bio),
		HasBotInLastname: inLastname,
		HasBotInBio:      inBio,
		IsVerified:       verified,
		LastCheck:        &now,
	}

	wasVerified := prev != nil && prev.IsVerified
	alreadyEarned := prev != nil && prev.TotalEarned > 0
	if prev != nil && prev.VerificationDate != nil {
		profile.VerificationDate = prev.VerificationDate
	}

	bonus := int64(0)
	penalty := int64(0)
	switch {
	case verified && !wasVerified && !alreadyEarned:
		bonus = config.TelegramVerifyBonus
		profile.VerificationDate = &now
	case verified && !wasVerified:
		profile.VerificationDate = &now
	case !verified && wasVerified && s.penalty && alreadyEarned:
		penalty = config.TelegramVerifyBonus
	}

	newBalance, err := s.repo.SaveTelegramCheck(ctx, profile, bonus-penalty)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		Verified:      verified,
		BonusAwarded:  bonus,
		PenaltyTaken:  penalty,
		NewBalance:    newBalance,
		AlreadyEarned: alreadyEarned,
	}, nil
}

// CheckSteam re-evaluates the Steam predicate. The verification bonus
// scales with the asserted profile level.
func (s *VerificationService) CheckSteam(ctx context.Context, userID int64, check SteamCheck) (*CheckResult, error) {
	steamID, ok := ExtractSteamID(check.SteamURL)
	if !ok {
		return nil, ErrInvalidSteamURL
	}

	prev, err := s.repo.GetSteamProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	hasBot := containsBotHandle(check.Description)
	verified := check.IsPublic && hasBot && check.ProfileLevel >= minSteamLevel

	now := time.Now()
	profile := &model.SteamProfile{
		UserID:              userID,
		SteamID:             OptionalString(steamID),
		SteamURL:            OptionalString(check.SteamURL),
		ProfileLevel:        check.ProfileLevel,
		GamesCount:          check.GamesCount,
		BadgesCount:         check.BadgesCount,
		IsPublic:            check.IsPublic,
		HasBotInDescription: hasBot,
		IsVerified:          verified,
		LastCheck:           &now,
	}

	wasVerified := prev != nil && prev.IsVerified
	alreadyEarned := prev != nil && prev.TotalEarned > 0
	if prev != nil && prev.VerificationDate != nil {
		profile.VerificationDate = prev.VerificationDate
	}

	bonus := int64(0)
	penalty := int64(0)
	switch {
	case verified && !wasVerified && !alreadyEarned:
		bonus = SteamBonus(check.ProfileLevel)
		profile.VerificationDate = &now
	case verified && !wasVerified:
		profile.VerificationDate = &now
	case !verified && wasVerified && s.penalty && alreadyEarned:
		penalty = config.SteamVerifyBonus
	}

	newBalance, err := s.repo.SaveSteamCheck(ctx, profile, bonus-penalty)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		Verified:      verified,
		BonusAwarded:  bonus,
		PenaltyTaken:  penalty,
		NewBalance:    newBalance,
		AlreadyEarned: alreadyEarned,
	}, nil
}

func (s *VerificationService) Status(ctx context.Context, userID int64) (telegram, steam bool, err error) {
	tp, err := s.repo.GetTelegramProfile(ctx, userID)
	if err != nil {
		return false, false, err
	}
	sp, err := s.repo.GetSteamProfile(ctx, userID)
	if err != nil {
		return false, false, err
	}
	return tp != nil && tp.IsVerified, sp != nil && sp.IsVerified, nil
}

// SteamBonus is the base verification bonus plus a level premium.
func SteamBonus(level int) int64 {
	bonus := config.SteamVerifyBonus
	switch {
	case level >= 50:
		bonus += 1500
	case level >= 25:
		bonus += 1000
	case level >= 10:
		bonus += 500
	}
	return bonus
}

// ExtractSteamID pulls the numeric id or vanity name out of a
// steamcommunity profile URL.
func ExtractSteamID(url string) (string, bool) {
	if m := steamProfileIDRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := steamVanityURLRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

func containsBotHandle(s string) bool {
	s = strings.ToLower(s)
	for _, alias := range botHandleAliases {
		if strings.Contains(s, alias) {
			return true
		}
	}
	return false
}

