// cmd/seed - Bootstraps the staff account.
package main

import (
	"log"
	"os"

	"ctfboard/database"
	"ctfboard/models"
	"ctfboard/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	name := os.Getenv("SEED_ADMIN_NAME")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if name == "" || password == "" {
		log.Fatal("SEED_ADMIN_NAME and SEED_ADMIN_PASSWORD must be set")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	ts := services.NewTeamService(db, 0)
	id, err := ts.Create(name, password, "staff", "", "Staff", "")
	if err != nil {
		log.Fatalf("Failed to create staff account: %v", err)
	}

	if err := db.Model(&models.Team{}).Where("id = ?", id).
		Update("admin", true).Error; err != nil {
		log.Fatalf("Failed to flag staff account as admin: %v", err)
	}

	log.Printf("Staff account %q created with id %s", name, id)
}
