package handlers

import (
	"log"

	"quickfiss/internal/models"
	"quickfiss/internal/services/user"
	"quickfiss/internal/services/verification"
	"quickfiss/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService         user.Service
	verificationService verification.Service
}

func NewUserHandler(userService user.Service, verificationService verification.Service) *UserHandler {
	return &UserHandler{
		userService:         userService,
		verificationService: verificationService,
	}
}

// Register creates an inactive account and sends the verification OTP.
// The returned tokens let the app drive the verification screens, but
// login stays gated until the email is verified.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input user.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.userService.Register(input)
	if err != nil {
		return utils.DomainError(c, err)
	}

	if err := h.verificationService.StartRegistration(created); err != nil {
		// The account exists; the user can hit resend-otp.
		log.Printf("Failed to start verification for user %d: %v", created.ID, err)
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       created.ID,
		Email:        created.Email,
		Role:         created.Role,
		TokenVersion: created.TokenVersion,
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return utils.InternalError(c, "Something went wrong")
	}

	return utils.Created(c, fiber.Map{
		"message": "User registered successfully. Check your email for the OTP.",
		"user": fiber.Map{
			"id":    created.ID,
			"email": created.Email,
			"role":  created.Role,
		},
		"access":  accessToken,
		"refresh": refreshToken,
	})
}

// GetMe returns the calling user's account record.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	found, err := h.userService.GetByID(claims.UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, found)
}
