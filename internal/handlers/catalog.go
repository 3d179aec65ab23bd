package handlers

import (
	"quickfiss/internal/repositories"
	"quickfiss/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogHandler(catalogRepo repositories.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
	}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogRepo.ListCategories()
	if err != nil {
		return utils.InternalError(c, "Failed to list categories")
	}
	return utils.Success(c, categories)
}

func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.catalogRepo.ListServices()
	if err != nil {
		return utils.InternalError(c, "Failed to list services")
	}
	return utils.Success(c, services)
}
