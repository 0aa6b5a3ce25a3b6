package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/middleware"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

type ActivatePromoRequest struct {
	Code string `json:"code"`
}

// ActivatePromo redeems a promo code for the current user.
func (h *Handler) ActivatePromo(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	var req ActivatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Введите промокод",
		})
	}

	result, err := h.promoSvc.Redeem(c.Context(), userID, req.Code)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, service.ErrPromoCodeNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, service.ErrPromoAlreadyUsed):
			status = fiber.StatusConflict
		case errors.Is(err, service.ErrPromoCodeExhausted):
			status = fiber.StatusConflict
		case errors.Is(err, service.ErrPromoCodeExpired):
			status = fiber.StatusGone
		case errors.Is(err, service.ErrPromoCodeInactive):
			status = fiber.StatusGone
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"code":        result.Code,
		"points":      result.Points,
		"new_balance": result.NewBalance,
	})
}

// GetAvailablePromos lists active codes with remaining uses.
func (h *Handler) GetAvailablePromos(c *fiber.Ctx) error {
	promos, err := h.promoSvc.ListAvailable(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить промокоды",
		})
	}

	return c.JSON(fiber.Map{
		"promos": promos,
	})
}
