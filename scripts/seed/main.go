package main

import (
	"log"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/database"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/auth"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

// Seeds a development advisor account and a demo client. Safe to rerun:
// existing rows with the same email or name are left alone.
func main() {
	log.Println("🚀 Seeding development data...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	hash, err := auth.HashPassword("changeme")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	advisor := entities.NewUser("advisor@advanced-insight.local", "Ryan McCarlie", hash)
	advisor.CompanyName = "Advanced Insight"

	var existing entities.User
	if err := db.Where("email = ?", advisor.Email).First(&existing).Error; err != nil {
		if err := db.Create(advisor).Error; err != nil {
			log.Fatalf("Failed to create advisor: %v", err)
		}
		log.Printf("✅ Created advisor %s (password: changeme)", advisor.Email)
	} else {
		advisor = &existing
		log.Printf("ℹ️  Advisor %s already exists", advisor.Email)
	}

	client := entities.NewClient("Demo", advisor.ID)
	client.Surname = "Client"
	client.CompanyName = "Demo Holdings"

	var existingClient entities.Client
	if err := db.Where("name = ? AND surname = ?", client.Name, client.Surname).First(&existingClient).Error; err != nil {
		if err := db.Create(client).Error; err != nil {
			log.Fatalf("Failed to create demo client: %v", err)
		}
		log.Println("✅ Created demo client")
	} else {
		log.Println("ℹ️  Demo client already exists")
	}

	log.Println("✅ Seeding done")
}
