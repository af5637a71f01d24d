package main

import (
	"flag"
	"log"
	"os"

	"github.com/chrisFinnerty/finwize/db"
	"github.com/chrisFinnerty/finwize/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "generator", "directory containing categories.csv and subcategories.csv")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	categories, subcategories, err := services.LoadTaxonomyCSV(*dir)

	if err != nil {
		log.Fatalf("Failed to load taxonomy files: %v", err)
	}

	if err := services.SeedTaxonomy(categories, subcategories); err != nil {
		log.Fatalf("Failed to seed taxonomy: %v", err)
	}

	log.Printf("Seeded %d categories and %d subcategories", len(categories), len(subcategories))
}
