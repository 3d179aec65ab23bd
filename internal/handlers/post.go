package handlers

import (
	"io"
	"log"
	"strconv"
	"strings"

	"quickfiss/internal/models"
	"quickfiss/internal/services/feed"
	"quickfiss/internal/storage"
	"quickfiss/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 << 20 // 5 MiB

type PostHandler struct {
	feedService feed.Service
	media       storage.MediaStore
}

func NewPostHandler(feedService feed.Service, media storage.MediaStore) *PostHandler {
	return &PostHandler{
		feedService: feedService,
		media:       media,
	}
}

// CreatePost publishes a service advert. The request is multipart so
// an image can ride along; the image is optional.
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	input := feed.CreatePostInput{
		JobTitle:    c.FormValue("job_title"),
		Description: c.FormValue("description"),
	}

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return utils.BadRequest(c, "Invalid price")
		}
		input.Price = price
	}
	if v := c.FormValue("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return utils.BadRequest(c, "Invalid category id")
		}
		categoryID := uint(id)
		input.CategoryID = &categoryID
	}
	if v := c.FormValue("tags"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				input.TagNames = append(input.TagNames, name)
			}
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		if h.media == nil {
			return utils.BadRequest(c, "Image uploads are not enabled")
		}
		if file.Size > maxImageSize {
			return utils.BadRequest(c, "Image must be at most 5MB")
		}
		src, err := file.Open()
		if err != nil {
			return utils.BadRequest(c, "Unreadable image")
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return utils.BadRequest(c, "Unreadable image")
		}

		url, err := h.media.UploadPostImage(c.Context(), file.Filename, data, file.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("Image upload failed: %v", err)
			return utils.InternalError(c, "Failed to upload image")
		}
		input.ImageURL = url
	}

	post, err := h.feedService.CreatePost(claims.UserID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Created(c, post)
}

// GetFeed returns the caller's personalized feed.
func (h *PostHandler) GetFeed(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	limit := c.QueryInt("limit", feed.DefaultLimit)
	posts, err := h.feedService.PersonalizedFeed(claims.UserID, limit)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, posts)
}

// RecordInteraction upserts the caller's like/view state for a post.
func (h *PostHandler) RecordInteraction(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid post ID")
	}

	var input struct {
		Liked  bool `json:"liked"`
		Viewed bool `json:"viewed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if err := h.feedService.RecordInteraction(claims.UserID, uint(postID), input.Liked, input.Viewed); err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Interaction recorded",
	})
}

// CreateReview files a rating for an artisan.
func (h *PostHandler) CreateReview(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		ArtisanProfileID uint   `json:"artisan_profile_id"`
		Rating           uint   `json:"rating"`
		Comment          string `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	review, err := h.feedService.CreateReview(claims.UserID, feed.CreateReviewInput{
		ArtisanProfileID: input.ArtisanProfileID,
		Rating:           input.Rating,
		Comment:          input.Comment,
	})
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Created(c, review)
}

// ListArtisanReviews returns the reviews filed against an artisan.
func (h *PostHandler) ListArtisanReviews(c *fiber.Ctx) error {
	artisanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid artisan ID")
	}

	reviews, err := h.feedService.ListArtisanReviews(uint(artisanID))
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, reviews)
}
