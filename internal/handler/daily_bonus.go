package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/middleware"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

// ClaimDailyBonus claims today's bonus. A second claim within the same
// calendar day is a 409.
func (h *Handler) ClaimDailyBonus(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	result, err := h.dailyBonusSvc.Claim(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrBonusAlreadyClaimed) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось начислить бонус",
		})
	}

	return c.JSON(fiber.Map{
		"bonus":          result.Bonus,
		"streak":         result.Streak,
		"new_balance":    result.NewBalance,
		"next_available": result.NextAvailable,
	})
}
