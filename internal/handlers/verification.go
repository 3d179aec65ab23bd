package handlers

import (
	"quickfiss/internal/services/verification"
	"quickfiss/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	verificationService verification.Service
}

func NewVerificationHandler(verificationService verification.Service) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// ResendOTP reissues the registration code for an unverified account.
func (h *VerificationHandler) ResendOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" {
		return utils.BadRequest(c, "Email is required")
	}

	if err := h.verificationService.ResendOTP(input.Email); err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "OTP sent successfully",
	})
}

// VerifyOTP activates the account when the submitted code matches.
func (h *VerificationHandler) VerifyOTP(c *fiber.Ctx) error {
	var input struct {
		UserID uint   `json:"user_id"`
		OTP    string `json:"otp"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.UserID == 0 || input.OTP == "" {
		return utils.BadRequest(c, "user_id and otp are required")
	}

	if err := h.verificationService.VerifyOTP(input.UserID, input.OTP); err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Email verified successfully",
	})
}

// PasswordResetRequest emails a reset code to a registered address.
func (h *VerificationHandler) PasswordResetRequest(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" {
		return utils.BadRequest(c, "Email is required")
	}

	if err := h.verificationService.RequestPasswordReset(input.Email); err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Password reset OTP sent",
	})
}

// PasswordResetConfirm swaps the password after OTP proof.
func (h *VerificationHandler) PasswordResetConfirm(c *fiber.Ctx) error {
	var input struct {
		Email           string `json:"email"`
		OTP             string `json:"otp"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" || input.OTP == "" {
		return utils.BadRequest(c, "Email and otp are required")
	}

	if err := h.verificationService.ConfirmPasswordReset(input.Email, input.OTP, input.Password, input.ConfirmPassword); err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Password reset successfully",
	})
}
