package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

type Handler struct {
	cfg             *config.Config
	userService     *service.UserService
	balanceSvc      *service.BalanceService
	caseSvc         *service.CaseService
	promoSvc        *service.PromoService
	referralSvc     *service.ReferralService
	dailyBonusSvc   *service.DailyBonusService
	verificationSvc *service.VerificationService
	withdrawalSvc   *service.WithdrawalService
}

func New(
	cfg *config.Config,
	userService *service.UserService,
	balanceSvc *service.BalanceService,
	caseSvc *service.CaseService,
	promoSvc *service.PromoService,
	referralSvc *service.ReferralService,
	dailyBonusSvc *service.DailyBonusService,
	verificationSvc *service.VerificationService,
	withdrawalSvc *service.WithdrawalService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		userService:     userService,
		balanceSvc:      balanceSvc,
		caseSvc:         caseSvc,
		promoSvc:        promoSvc,
		referralSvc:     referralSvc,
		dailyBonusSvc:   dailyBonusSvc,
		verificationSvc: verificationSvc,
		withdrawalSvc:   withdrawalSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
