package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

type CreatePromoRequest struct {
	Code        string     `json:"code"`
	Points      int64      `json:"points"`
	MaxUses     int        `json:"max_uses"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// AdminCreatePromo registers a new promo code. max_uses of -1 means no cap.
func (h *Handler) AdminCreatePromo(c *fiber.Ctx) error {
	var req CreatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" || req.Points <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Укажите код и положительное число баллов",
		})
	}
	if req.MaxUses < model.UnlimitedUses || req.MaxUses == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Некорректный лимит использований",
		})
	}

	promo := &model.PromoCode{
		Code:      req.Code,
		Points:    req.Points,
		MaxUses:   req.MaxUses,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if req.Description != "" {
		promo.Description = &req.Description
	}

	if err := h.promoSvc.CreatePromoCode(c.Context(), promo); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Промокод с таким кодом уже существует",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(promo)
}

// AdminDeactivatePromo turns a promo code off.
func (h *Handler) AdminDeactivatePromo(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Укажите код",
		})
	}

	if err := h.promoSvc.DeactivatePromoCode(c.Context(), code); err != nil {
		if errors.Is(err, service.ErrPromoCodeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Промокод не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось деактивировать промокод",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// AdminListWithdrawals returns the pending withdrawal queue.
func (h *Handler) AdminListWithdrawals(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	requests, err := h.withdrawalSvc.ListPending(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить заявки",
		})
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

type ResolveWithdrawalRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// AdminResolveWithdrawal completes or rejects a pending request. A
// rejection returns the item to the user.
func (h *Handler) AdminResolveWithdrawal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Некорректный идентификатор заявки",
		})
	}

	var req ResolveWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	if err := h.withdrawalSvc.Resolve(c.Context(), id, req.Approve, req.Notes); err != nil {
		if errors.Is(err, repository.ErrWithdrawalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Заявка не найдена или уже обработана",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обработать заявку",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

type SetReferralBonusRequest struct {
	Amount int64 `json:"amount"`
}

// AdminSetReferralBonus overrides the referral bonus at runtime.
func (h *Handler) AdminSetReferralBonus(c *fiber.Ctx) error {
	var req SetReferralBonusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	if err := h.referralSvc.SetBonus(c.Context(), req.Amount); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Сумма бонуса должна быть положительной",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
