package main

import (
	"log"
	"os"

	"restaurant-chatbot-be/internal/model"
	"restaurant-chatbot-be/pkg/database"

	"github.com/joho/godotenv"
)

// firstOrderID keeps order numbers four digits long for guests reading them back.
const firstOrderID = 1001

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 2. Extensions
	log.Println("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto: %v. Continuing...", err)
	}

	// 3. Tables
	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.SupportTicket{},
		&model.Reservation{},
		&model.CustomerFeedback{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Order numbering starts at 1001 on an empty table only.
	log.Println("Step 3: Aligning order numbering...")
	var orders int64
	if err := db.Model(&model.Order{}).Count(&orders).Error; err != nil {
		log.Fatalf("Error: Failed to count orders: %v", err)
	}
	if orders == 0 {
		if err := db.Exec(`SELECT setval(pg_get_serial_sequence('orders', 'id'), ?, false)`, firstOrderID).Error; err != nil {
			log.Printf("Warn: Failed to restart order sequence: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
