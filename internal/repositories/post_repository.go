package repositories

import (
	"errors"

	"quickfiss/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	ListByArtisan(artisanProfileID uint) ([]models.Post, error)
	ListRecent(limit int) ([]models.Post, error)
	ListByCategoriesOrTags(categoryIDs, tagIDs []uint, limit int) ([]models.Post, error)
	LikedPostIDs(userID uint) ([]uint, error)
	UpsertInteraction(interaction *models.UserInteraction) error
	CreateReview(review *models.Review) error
	ListReviewsByArtisan(artisanProfileID uint) ([]models.Review, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	result := r.db.Preload("Tags").Preload("Category").First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &post, nil
}

func (r *postRepository) ListByArtisan(artisanProfileID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Tags").
		Where("artisan_profile_id = ?", artisanProfileID).
		Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return posts, nil
}

func (r *postRepository) ListRecent(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Tags").Preload("Category").
		Order("created_at DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return posts, nil
}

// ListByCategoriesOrTags returns posts matching any preferred category
// or any followed tag, newest first.
func (r *postRepository) ListByCategoriesOrTags(categoryIDs, tagIDs []uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Tags").Preload("Category").
		Distinct("posts.*").
		Joins("LEFT JOIN post_tags ON post_tags.post_id = posts.id").
		Where("posts.category_id IN ? OR post_tags.tag_id IN ?", categoryIDs, tagIDs).
		Order("posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return posts, nil
}

func (r *postRepository) LikedPostIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.UserInteraction{}).
		Where("user_id = ? AND liked = ?", userID, true).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return ids, nil
}

// UpsertInteraction keeps one interaction row per (user, post) pair.
func (r *postRepository) UpsertInteraction(interaction *models.UserInteraction) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liked", "viewed", "updated_at"}),
	}).Create(interaction)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *postRepository) CreateReview(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *postRepository) ListReviewsByArtisan(artisanProfileID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("artisan_profile_id = ?", artisanProfileID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return reviews, nil
}
