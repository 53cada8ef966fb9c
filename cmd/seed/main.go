package main

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/localnerve/author-clock/data"
	"github.com/localnerve/author-clock/internal/config"
	"github.com/localnerve/author-clock/internal/database"
	"github.com/localnerve/author-clock/internal/models"
)

type seedQuote struct {
	Text           string  `json:"text"`
	Author         string  `json:"author"`
	Source         *string `json:"source"`
	SourceURL      *string `json:"source_url"`
	Language       string  `json:"language"`
	Category       *string `json:"category"`
	IsPublicDomain bool    `json:"is_public_domain"`
}

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var seeds []seedQuote
	if err := json.Unmarshal(data.SeedQuotes, &seeds); err != nil {
		log.Fatalf("Failed to parse embedded seed quotes: %v", err)
	}

	var inserted int
	for _, s := range seeds {
		var count int64
		if err := db.Model(&models.Quote{}).
			Where("text = ? AND author = ?", s.Text, s.Author).
			Count(&count).Error; err != nil {
			log.Fatalf("Failed to check for existing quote: %v", err)
		}
		if count > 0 {
			continue
		}

		quote := models.Quote{
			Text:           s.Text,
			Author:         s.Author,
			Source:         s.Source,
			SourceURL:      s.SourceURL,
			Language:       s.Language,
			Category:       s.Category,
			IsPublicDomain: s.IsPublicDomain,
			IsApproved:     true,
		}
		if quote.Language == "" {
			quote.Language = "ko"
		}
		if err := db.Create(&quote).Error; err != nil {
			log.Fatalf("Failed to insert quote: %v", err)
		}
		inserted++
	}

	log.Printf("Seed complete: %d quotes inserted, %d already present", inserted, len(seeds)-inserted)
}
