package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

type UserService struct {
	repo *repository.Repository
}

func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

type TelegramUser struct {
	ID           int64
	Username     *string
	FirstName    *string
	LastName     *string
	LanguageCode *string
}

// GetOrCreateUser upserts the caller from validated initData. New users
// start with the default balance and a fresh referral code; existing users
// get their name fields and last_active refreshed.
func (s *UserService) GetOrCreateUser(ctx context.Context, telegramUser TelegramUser) (*model.User, bool, error) {
	existingUser, err := s.repo.GetUser(ctx, telegramUser.ID)
	if err == nil {
		existingUser.Username = telegramUser.Username
		existingUser.FirstName = telegramUser.FirstName
		existingUser.LastName = telegramUser.LastName
		existingUser.LanguageCode = telegramUser.LanguageCode
		if err := s.repo.TouchUser(ctx, existingUser); err != nil {
			return nil, false, err
		}
		return existingUser, false, nil
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, err
	}

	referralCode, err := generateReferralCode()
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		ID:           telegramUser.ID,
		Username:     telegramUser.Username,
		FirstName:    telegramUser.FirstName,
		LastName:     telegramUser.LastName,
		LanguageCode: telegramUser.LanguageCode,
		ReferralCode: referralCode,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	return s.repo.GetUserByReferralCode(ctx, code)
}

// Snapshot assembles the GET /api/user payload.
func (s *UserService) Snapshot(ctx context.Context, userID int64) (*model.UserSnapshot, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	inventory, err := s.repo.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}

	referralsCount, err := s.repo.CountReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &model.UserSnapshot{
		User:           *user,
		Inventory:      inventory,
		ReferralsCount: referralsCount,
	}

	if tg, err := s.repo.GetTelegramProfile(ctx, userID); err == nil && tg != nil {
		snapshot.TelegramVerified = tg.IsVerified
	}
	if steam, err := s.repo.GetSteamProfile(ctx, userID); err == nil && steam != nil {
		snapshot.SteamVerified = steam.IsVerified
	}

	return snapshot, nil
}

// OptionalString maps "" to NULL so every entry point (HTTP, bot) stores
// absent Telegram name fields the same way.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func generateReferralCode() (string, error) {
	bytes := make([]byte, 5)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	code := base32.StdEncoding.EncodeToString(bytes)
	code = strings.TrimRight(code, "=")
	return strings.ToLower(code[:8]), nil
}
