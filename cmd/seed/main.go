package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"

	"restaurant-chatbot-be/internal/entity"
	"restaurant-chatbot-be/internal/repository/implementation"
	"restaurant-chatbot-be/pkg/database"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var menuYAML []byte

type menuFile struct {
	Items []menuEntry `yaml:"items"`
}

type menuEntry struct {
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	InStock     *bool   `yaml:"in_stock"`
}

func loadMenu(data []byte) ([]*entity.MenuItem, error) {
	var file menuFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	items := make([]*entity.MenuItem, 0, len(file.Items))
	for _, e := range file.Items {
		if e.Name == "" || e.Category == "" {
			return nil, fmt.Errorf("menu entry %q is missing name or category", e.Name)
		}
		inStock := true
		if e.InStock != nil {
			inStock = *e.InStock
		}
		items = append(items, &entity.MenuItem{
			Name:        e.Name,
			Category:    e.Category,
			Description: e.Description,
			Price:       e.Price,
			InStock:     inStock,
		})
	}
	return items, nil
}

func main() {
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

	items, err := loadMenu(menuYAML)
	if err != nil {
		log.Fatalf("Error: Invalid menu file: %v", err)
	}

	log.Printf("Seeding %d menu items...", len(items))
	repo := implementation.NewMenuItemRepository(db)
	ctx := context.Background()
	for _, item := range items {
		if err := repo.Upsert(ctx, item); err != nil {
			log.Fatalf("Error: Failed to upsert %s: %v", item.Name, err)
		}
	}

	total, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Error: Failed to count menu items: %v", err)
	}
	log.Printf("✅ Menu seeding completed! %d items on the menu.", total)
}
