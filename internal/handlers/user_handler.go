package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	authService    *services.AuthService
	profileService *services.ProfileService
}

func NewUserHandler(authService *services.AuthService, profileService *services.ProfileService) *UserHandler {
	return &UserHandler{authService: authService, profileService: profileService}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusConflict, "User already exists")
		}
		return serverError(c, "registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return serverError(c, "login failed", err)
	}

	return c.JSON(resp)
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authorized")
	}

	user, err := h.profileService.GetProfile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		return serverError(c, "failed to load profile", err)
	}

	return c.JSON(dto.UserEnvelope{Success: true, User: user})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authorized")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.profileService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		return serverError(c, "failed to update profile", err)
	}

	return c.JSON(dto.UserEnvelope{Success: true, User: user})
}

func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authorized")
	}

	var req dto.PasswordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.authService.UpdatePassword(c.UserContext(), userID, &req); err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return errorJSON(c, fiber.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, services.ErrUserNotFound):
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		return serverError(c, "failed to update password", err)
	}

	return c.JSON(dto.MessageResponse{Success: true, Message: "Password updated successfully"})
}
