// Package feed serves the personalized post feed and the post, review
// and interaction operations that drive it.
package feed

import (
	"quickfiss/internal/apperrors"
	"quickfiss/internal/models"
	"quickfiss/internal/repositories"
)

// DefaultLimit caps the feed page when the caller does not ask for a
// specific size.
const DefaultLimit = 20

type CreatePostInput struct {
	JobTitle    string
	Description string
	CategoryID  *uint
	TagNames    []string
	Price       float64
	ImageURL    string
}

type CreateReviewInput struct {
	ArtisanProfileID uint
	Rating           uint
	Comment          string
}

type Service interface {
	CreatePost(userID uint, input CreatePostInput) (*models.Post, error)
	PersonalizedFeed(userID uint, limit int) ([]models.Post, error)
	RecordInteraction(userID, postID uint, liked, viewed bool) error
	CreateReview(userID uint, input CreateReviewInput) (*models.Review, error)
	ListArtisanReviews(artisanProfileID uint) ([]models.Review, error)
}

type service struct {
	posts    repositories.PostRepository
	profiles repositories.ProfileRepository
	catalog  repositories.CatalogRepository
}

func NewService(posts repositories.PostRepository, profiles repositories.ProfileRepository, catalog repositories.CatalogRepository) Service {
	return &service{
		posts:    posts,
		profiles: profiles,
		catalog:  catalog,
	}
}

// CreatePost publishes an advert under the caller's artisan profile.
// Unknown tag names are created on the fly.
func (s *service) CreatePost(userID uint, input CreatePostInput) (*models.Post, error) {
	profile, err := s.profiles.GetArtisanByUserID(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.NotFound("Artisan profile not found")
		}
		return nil, err
	}

	if input.JobTitle == "" {
		return nil, apperrors.Validation("Job title is required")
	}
	if input.CategoryID != nil {
		if _, err := s.catalog.GetCategoriesByIDs([]uint{*input.CategoryID}); err != nil {
			return nil, err
		}
	}

	tags, err := s.catalog.EnsureTags(input.TagNames)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ArtisanProfileID: profile.ID,
		ImageURL:         input.ImageURL,
		JobTitle:         input.JobTitle,
		Description:      input.Description,
		CategoryID:       input.CategoryID,
		Tags:             tags,
		Price:            input.Price,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// PersonalizedFeed returns posts matching the client's preferred
// categories or followed tags, liked posts first, newest first within
// each group. A client with no preferences gets the plain recent feed.
func (s *service) PersonalizedFeed(userID uint, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	profile, err := s.profiles.GetClientByUserID(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.NotFound("Client profile not found")
		}
		return nil, err
	}

	categoryIDs := make([]uint, 0, len(profile.PreferredCategories))
	for _, c := range profile.PreferredCategories {
		categoryIDs = append(categoryIDs, c.ID)
	}
	tagIDs := make([]uint, 0, len(profile.FollowedTags))
	for _, t := range profile.FollowedTags {
		tagIDs = append(tagIDs, t.ID)
	}

	var posts []models.Post
	if len(categoryIDs) == 0 && len(tagIDs) == 0 {
		posts, err = s.posts.ListRecent(limit)
	} else {
		posts, err = s.posts.ListByCategoriesOrTags(categoryIDs, tagIDs, limit)
	}
	if err != nil {
		return nil, err
	}

	likedIDs, err := s.posts.LikedPostIDs(userID)
	if err != nil {
		return nil, err
	}
	return boostLiked(posts, likedIDs), nil
}

// boostLiked stably partitions posts into liked-first order, preserving
// the recency order within each group.
func boostLiked(posts []models.Post, likedIDs []uint) []models.Post {
	if len(likedIDs) == 0 {
		return posts
	}
	liked := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	ordered := make([]models.Post, 0, len(posts))
	var rest []models.Post
	for _, p := range posts {
		if liked[p.ID] {
			ordered = append(ordered, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(ordered, rest...)
}

// RecordInteraction upserts the caller's like/view state for a post.
func (s *service) RecordInteraction(userID, postID uint, liked, viewed bool) error {
	if _, err := s.posts.GetByID(postID); err != nil {
		if err == repositories.ErrPostNotFound {
			return apperrors.NotFound("Post not found")
		}
		return err
	}
	return s.posts.UpsertInteraction(&models.UserInteraction{
		UserID: userID,
		PostID: postID,
		Liked:  liked,
		Viewed: viewed,
	})
}

// CreateReview files a rating for an artisan under the caller's client
// profile.
func (s *service) CreateReview(userID uint, input CreateReviewInput) (*models.Review, error) {
	profile, err := s.profiles.GetClientByUserID(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.NotFound("Client profile not found")
		}
		return nil, err
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.Validation("Rating must be between 1 and 5")
	}
	if _, err := s.profiles.GetArtisanByID(input.ArtisanProfileID); err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.NotFound("Artisan profile not found")
		}
		return nil, err
	}

	review := &models.Review{
		ClientProfileID:  profile.ID,
		ArtisanProfileID: input.ArtisanProfileID,
		Rating:           input.Rating,
		Comment:          input.Comment,
	}
	if err := s.posts.CreateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *service) ListArtisanReviews(artisanProfileID uint) ([]models.Review, error) {
	return s.posts.ListReviewsByArtisan(artisanProfileID)
}
