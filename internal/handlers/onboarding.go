package handlers

import (
	"time"

	"quickfiss/internal/models"
	"quickfiss/internal/services/profile"
	"quickfiss/internal/services/user"
	"quickfiss/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type OnboardingHandler struct {
	userService    user.Service
	profileService profile.Service
}

func NewOnboardingHandler(userService user.Service, profileService profile.Service) *OnboardingHandler {
	return &OnboardingHandler{
		userService:    userService,
		profileService: profileService,
	}
}

// SelectRole assigns the caller's role and converges the profile
// tables onto it.
func (h *OnboardingHandler) SelectRole(c *fiber.Ctx) error {
	var input struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	updated, err := h.userService.SetRole(claims.UserID, input.Role)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Role updated successfully",
		"role":    updated.Role,
	})
}

// ClientOnboarding fills in the client profile. Omitted fields keep
// their stored values.
func (h *OnboardingHandler) ClientOnboarding(c *fiber.Ctx) error {
	var input struct {
		FullName             string `json:"full_name"`
		DateOfBirth          string `json:"date_of_birth"`
		Country              string `json:"country"`
		State                string `json:"state"`
		PreferredCategoryIDs []uint `json:"preferred_category_ids"`
		FollowedTagIDs       []uint `json:"followed_tag_ids"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	dob, err := parseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return utils.BadRequest(c, "date_of_birth must be YYYY-MM-DD")
	}

	updated, err := h.profileService.UpdateClientOnboarding(claims.UserID, profile.ClientOnboardingInput{
		FullName:             input.FullName,
		DateOfBirth:          dob,
		Country:              input.Country,
		State:                input.State,
		PreferredCategoryIDs: input.PreferredCategoryIDs,
		FollowedTagIDs:       input.FollowedTagIDs,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, updated)
}

// ArtisanKYC fills in the artisan profile's identity fields.
func (h *OnboardingHandler) ArtisanKYC(c *fiber.Ctx) error {
	var input struct {
		FullName    string `json:"full_name"`
		DateOfBirth string `json:"date_of_birth"`
		Country     string `json:"country"`
		State       string `json:"state"`
		Profession  string `json:"profession"`
		Experience  string `json:"experience"`
		About       string `json:"about"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	dob, err := parseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return utils.BadRequest(c, "date_of_birth must be YYYY-MM-DD")
	}

	updated, err := h.profileService.UpdateArtisanKYC(claims.UserID, profile.ArtisanKYCInput{
		FullName:    input.FullName,
		DateOfBirth: dob,
		Country:     input.Country,
		State:       input.State,
		Profession:  input.Profession,
		Experience:  input.Experience,
		About:       input.About,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, updated)
}

// ArtisanCustomization replaces the artisan's offered service list.
func (h *OnboardingHandler) ArtisanCustomization(c *fiber.Ctx) error {
	var input struct {
		OfferedServiceIDs []uint `json:"offered_service_ids"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	updated, err := h.profileService.CustomizeArtisan(claims.UserID, profile.ArtisanCustomizationInput{
		OfferedServiceIDs: input.OfferedServiceIDs,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, updated)
}

func parseDateOfBirth(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
