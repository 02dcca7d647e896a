package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/database"
)

// Applies the bootstrap schema, then any SQL files passed as arguments.
func main() {
	log.Println("Starting schema migration...")

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.CreateTables(db, config.GetDriver()); err != nil {
		log.Fatal("Failed to apply schema:", err)
	}
	log.Println("Bootstrap schema applied")

	for _, path := range os.Args[1:] {
		executeSQLFile(db, path)
	}

	log.Println("Migration completed successfully!")
}

func executeSQLFile(db *sql.DB, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Skipping %s: %v", filePath, err)
		return
	}

	log.Printf("Executing %s...", filePath)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", filePath, err)
	} else {
		log.Printf("Successfully executed %s", filePath)
	}
}
