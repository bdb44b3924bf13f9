package main

import (
	"log"
	"os"

	"reelmatch/backend/internal/config"
	"reelmatch/backend/internal/database"
)

// Seeds the movie catalog, and demo accounts when invoked with -demo.
func main() {
	config.LoadConfig()

	database.Connect(config.AppConfig.DatabaseURL)

	if err := database.SeedMovies(database.DB); err != nil {
		log.Fatalf("failed to seed movies: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "-demo" {
		if err := database.SeedDemoData(database.DB); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	log.Println("Seeding completed.")
}
