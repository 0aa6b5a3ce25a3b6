package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/middleware"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

type WithdrawItemRequest struct {
	ItemID string `json:"item_id"`
}

// WithdrawItem creates a withdrawal request for an available inventory
// item against the user's saved trade link.
func (h *Handler) WithdrawItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	var req WithdrawItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Некорректный идентификатор предмета",
		})
	}

	request, err := h.withdrawalSvc.RequestWithdrawal(c.Context(), userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTradeLink):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, repository.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Предмет не найден",
			})
		case errors.Is(err, service.ErrItemNotAvailable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось создать заявку на вывод",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"request_id": request.ID,
		"status":     request.Status,
	})
}
