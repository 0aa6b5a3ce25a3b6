package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/middleware"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

type InviteFriendRequest struct {
	ReferralCode string `json:"referral_code"`
}

// InviteFriend attributes the calling user to the owner of the referral
// code. Attribution is possible once, within the post-registration window.
func (h *Handler) InviteFriend(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	var req InviteFriendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	if req.ReferralCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Введите реферальный код",
		})
	}

	if err := h.referralSvc.Attribute(c.Context(), userID, req.ReferralCode); err != nil {
		switch {
		case errors.Is(err, service.ErrReferrerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrSelfReferral):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrAlreadyAttributed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrAttributionWindowOver):
			return c.Status(fiber.StatusGone).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось привязать реферала",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// GetReferralInfo returns the user's code, invite link and counters.
func (h *Handler) GetReferralInfo(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	info, err := h.referralSvc.Info(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить реферальную информацию",
		})
	}

	return c.JSON(info)
}

// CheckTelegram re-evaluates the Telegram profile predicate over the
// client-asserted fields.
func (h *Handler) CheckTelegram(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	var req service.TelegramCheck
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	result, err := h.verificationSvc.CheckTelegram(c.Context(), userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось проверить профиль",
		})
	}

	return c.JSON(result)
}

// CheckSteam re-evaluates the Steam profile predicate.
func (h *Handler) CheckSteam(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Необходима авторизация",
		})
	}

	var req service.SteamCheck
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	result, err := h.verificationSvc.CheckSteam(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSteamURL) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось проверить профиль",
		})
	}

	return c.JSON(result)
}
