package utils

import (
	"log"

	"quickfiss/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a JSON response with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// ResetContent sends an empty 205 response.
func ResetContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusResetContent)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// DomainError maps a typed domain error to its HTTP response. Anything
// that is not a domain error is logged and hidden behind a generic 500.
func DomainError(c *fiber.Ctx, err error) error {
	ae := apperrors.AsError(err)
	if ae == nil {
		log.Printf("unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
		return InternalError(c, "Something went wrong")
	}

	switch ae.Kind {
	case apperrors.KindNotFound:
		return NotFound(c, ae.Message)
	default:
		// Validation, conflict, expired and credential failures are all
		// 400-class on this API surface.
		return BadRequest(c, ae.Message)
	}
}
