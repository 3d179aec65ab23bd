package models

import "gorm.io/gorm"

// CategoryNames is the fixed catalog taxonomy. cmd/seed creates one
// Category row per name.
var CategoryNames = []string{
	"Automotive",
	"Cleaning and Waste",
	"Food and Catering",
	"Home Services",
	"Logistics",
	"Personal Care",
	"Tech and Electronics",
}

type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Service struct {
	gorm.Model
	Name       string   `gorm:"not null" json:"name"`
	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `json:"category"`
}

type Tag struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
