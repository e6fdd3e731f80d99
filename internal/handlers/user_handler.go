package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/vbreban/accounts-backend/internal/dto"
	"github.com/vbreban/accounts-backend/internal/middleware"
	"github.com/vbreban/accounts-backend/internal/models"
	"github.com/vbreban/accounts-backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// validationErrs are the payload failures translated to 400.
var validationErrs = []error{
	services.ErrEmailPasswordRequired,
	services.ErrInvalidEmail,
	services.ErrPasswordTooShort,
	services.ErrInvalidSubscription,
	services.ErrMissingEmail,
	services.ErrAlreadyVerified,
}

func isValidationErr(err error) bool {
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func projectUser(user *models.User) dto.UserResponse {
	return dto.UserResponse{Email: user.Email, Subscription: user.Subscription}
}

func serverError(c *fiber.Ctx, action string, err error) error {
	slog.Error("request failed", "action", action, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Message: "Server error",
	})
}

func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	user, err := h.userService.Signup(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: err.Error()})
		case isValidationErr(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return serverError(c, "signup", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SignupResponse{User: projectUser(user)})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	token, user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: err.Error()})
		case isValidationErr(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return serverError(c, "login", err)
	}

	return c.JSON(dto.LoginResponse{Token: token, User: projectUser(user)})
}

func (h *UserHandler) Logout(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Not authorized"})
	}

	if err := h.userService.Logout(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Not authorized"})
		}
		return serverError(c, "logout", err)
	}

	return c.JSON(fiber.Map{"message": "User has been logged out successfully"})
}

func (h *UserHandler) Current(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Not authorized"})
	}

	user, err := h.userService.CurrentUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Not authorized"})
		}
		return serverError(c, "current", err)
	}

	return c.JSON(projectUser(user))
}

// UpdateSubscription is owner-only: the authenticated identity must match
// the :userId path parameter.
func (h *UserHandler) UpdateSubscription(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Not authorized"})
	}

	if c.Params("userId") != userID.String() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	user, err := h.userService.UpdateSubscription(userID, req.Subscription)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSubscription):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return serverError(c, "update subscription", err)
	}

	return c.JSON(fiber.Map{
		"message": "Subscription updated successfully!",
		"user":    user,
	})
}

// VerifyEmail completes the verification flow for the token in the link.
func (h *UserHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("verificationToken")

	if err := h.userService.ConfirmEmail(token); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return serverError(c, "verify email", err)
	}

	return c.JSON(fiber.Map{"message": "Verification successful"})
}

// RequestVerification re-sends the verification mail with a fresh token.
func (h *UserHandler) RequestVerification(c *fiber.Ctx) error {
	var req dto.RequestVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if err := h.userService.RequestVerification(req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		case isValidationErr(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return serverError(c, "request verification", err)
	}

	return c.JSON(fiber.Map{"message": "Verification email sent"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	email := c.Params("email")

	if err := h.userService.DeleteByEmail(email); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		return serverError(c, "delete user", err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
