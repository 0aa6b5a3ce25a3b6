package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/middleware"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

// GetUser upserts the authenticated user and returns the full snapshot
// the mini app renders from.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	tgUser := middleware.GetTelegramUser(c)
	if tgUser == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	user, isNew, err := h.userService.GetOrCreateUser(c.Context(), service.TelegramUser{
		ID:           tgUser.UserID,
		Username:     service.OptionalString(tgUser.Username),
		FirstName:    service.OptionalString(tgUser.FirstName),
		LastName:     service.OptionalString(tgUser.LastName),
		LanguageCode: service.OptionalString(tgUser.LanguageCode),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить пользователя",
		})
	}

	snapshot, err := h.userService.Snapshot(c.Context(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить профиль",
		})
	}

	available, err := h.dailyBonusSvc.Available(c.Context(), user.ID)
	if err == nil {
		snapshot.DailyBonusAvailable = available
	}

	return c.JSON(fiber.Map{
		"user":   snapshot,
		"is_new": isNew,
	})
}

type SetTradeLinkRequest struct {
	TradeLink string `json:"trade_link"`
}

func (h *Handler) SetTradeLink(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	var req SetTradeLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	if err := h.withdrawalSvc.SetTradeLink(c.Context(), userID, req.TradeLink); err != nil {
		if errors.Is(err, service.ErrInvalidTradeLink) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось сохранить трейд-ссылку",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// GetTransactions returns the user's ledger page.
func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	transactions, err := h.balanceSvc.GetTransactions(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить историю",
		})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
	})
}
