package models

import "gorm.io/gorm"

// Post is a service advert published by an artisan. ImageURL points at
// the uploaded media object in blob storage.
type Post struct {
	gorm.Model
	ArtisanProfileID uint           `gorm:"not null;index" json:"artisan_profile_id"`
	ArtisanProfile   ArtisanProfile `json:"artisan_profile"`
	ImageURL         string         `json:"image_url"`
	JobTitle         string         `gorm:"not null" json:"job_title"`
	Description      string         `json:"description"`
	CategoryID       *uint          `json:"category_id"`
	Category         *Category      `json:"category,omitempty"`
	Tags             []Tag          `gorm:"many2many:post_tags" json:"tags"`
	Price            float64        `json:"price"`
}

type Review struct {
	gorm.Model
	ClientProfileID  uint   `gorm:"not null;index" json:"client_profile_id"`
	ArtisanProfileID uint   `gorm:"not null;index" json:"artisan_profile_id"`
	Rating           uint   `gorm:"not null" json:"rating"`
	Comment          string `json:"comment"`
}

// UserInteraction records likes and views per (user, post) pair; the
// composite unique index keeps one row per pair.
type UserInteraction struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID uint `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	Liked  bool `gorm:"default:false" json:"liked"`
	Viewed bool `gorm:"default:false" json:"viewed"`
}
