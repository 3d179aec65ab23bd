// Package main seeds the service catalog: the fixed category taxonomy
// plus a starter set of services per category. Safe to run repeatedly.
package main

import (
	"log"

	"quickfiss/internal/config"
	"quickfiss/internal/models"
	"quickfiss/internal/repositories"
)

var serviceSuffixes = []string{
	"Basic Service",
	"Standard Service",
	"Premium Service",
	"Express Service",
	"Professional Service",
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	db := repositories.DB

	for _, name := range models.CategoryNames {
		var category models.Category
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			log.Fatalf("Failed to seed category %q: %v", name, err)
		}

		for _, suffix := range serviceSuffixes {
			service := models.Service{
				Name:       name + " " + suffix,
				CategoryID: category.ID,
			}
			if err := db.Where(models.Service{Name: service.Name, CategoryID: category.ID}).
				FirstOrCreate(&service).Error; err != nil {
				log.Fatalf("Failed to seed service %q: %v", service.Name, err)
			}
		}

		log.Printf("Seeded category %q with %d services", name, len(serviceSuffixes))
	}

	log.Println("✅ Catalog seed complete")
}
