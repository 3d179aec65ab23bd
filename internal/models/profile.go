package models

import (
	"time"

	"gorm.io/gorm"
)

// ClientProfile is the role-specific extension record for client
// accounts. It is created and removed by the profile service whenever
// the owning user's role changes, never by handlers directly.
type ClientProfile struct {
	gorm.Model
	UserID              uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName            string     `json:"full_name"`
	DateOfBirth         *time.Time `json:"date_of_birth"`
	Country             string     `json:"country"`
	State               string     `json:"state"`
	PreferredCategories []Category `gorm:"many2many:client_preferred_categories" json:"preferred_categories"`
	FollowedTags        []Tag      `gorm:"many2many:client_followed_tags" json:"followed_tags"`
}

// ArtisanProfile is the role-specific extension record for artisan
// accounts, carrying KYC fields filled in during onboarding.
type ArtisanProfile struct {
	gorm.Model
	UserID          uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName        string     `json:"full_name"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Country         string     `json:"country"`
	State           string     `json:"state"`
	Profession      string     `json:"profession"`
	Experience      string     `json:"experience"`
	About           string     `json:"about"`
	OfferedServices []Service  `gorm:"many2many:artisan_offered_services" json:"offered_services"`
}
