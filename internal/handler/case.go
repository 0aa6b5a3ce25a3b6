package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/middleware"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

type OpenCaseRequest struct {
	Price int64 `json:"price"`
}

// OpenCase debits the tier price and drops a random item into the user's
// inventory. An insufficient balance is a 402 with the shortfall attached.
func (h *Handler) OpenCase(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	var req OpenCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	result, err := h.caseSvc.OpenCase(c.Context(), userID, req.Price)
	if err != nil {
		var insufficient *repository.InsufficientBalanceError
		switch {
		case errors.Is(err, service.ErrUnknownCase):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"error":    "Недостаточно баллов",
				"balance":  insufficient.Balance,
				"required": insufficient.Required,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось открыть кейс",
		})
	}

	return c.JSON(fiber.Map{
		"item":        result.Item,
		"item_price":  result.Item.ItemPrice,
		"new_balance": result.NewBalance,
	})
}

// GetCases lists the available case tiers.
func (h *Handler) GetCases(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"prices": h.caseSvc.Prices(),
	})
}

// GetInventory returns the user's items.
func (h *Handler) GetInventory(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	items, err := h.withdrawalSvc.GetInventory(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить инвентарь",
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
	})
}
