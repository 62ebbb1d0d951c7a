// Package main provides a tool to seed the catalog with demo books.
//
// It writes through the service layer so every book gets its location
// path resolved against the shared location tree.
//
// Usage:
//
//	DATA_PATH=~/.shelfkeeper go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/service"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store/sqlite"
	"github.com/shelfkeeper/shelfkeeper-server/internal/validation"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dataPath = filepath.Join(home, ".shelfkeeper")
	}
	if err := os.MkdirAll(dataPath, 0o750); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "shelfkeeper.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	locations := service.NewLocationService(s, logger)
	catalog := service.NewCatalogService(s, locations, validation.New(), logger)

	ctx := context.Background()
	seeded := 0

	for _, b := range demoBooks() {
		book := b
		id, err := catalog.AddBook(ctx, &book)
		if err != nil {
			log.Printf("Skipping %q: %v", book.Title, err)
			continue
		}
		fmt.Printf("Added %q (id %d, location %d)\n", book.Title, id, book.LocationID)
		seeded++
	}

	fmt.Printf("\nSeeded %d books\n", seeded)
}

func demoBooks() []domain.Book {
	return []domain.Book{
		{
			Title:          "Dune",
			Authors:        "Frank Herbert",
			Language:       "en",
			Genre:          "Science Fiction",
			LocationLevel1: "Office",
			LocationLevel2: "Black shelf",
			LocationLevel3: "Top row",
			ReadingStatus:  domain.StatusRead,
		},
		{
			Title:          "Dune Messiah",
			Authors:        "Frank Herbert",
			Language:       "en",
			Genre:          "Science Fiction",
			LocationLevel1: "Office",
			LocationLevel2: "Black shelf",
			LocationLevel3: "Top row",
			ReadingStatus:  domain.StatusReading,
		},
		{
			Title:          "Мастер и Маргарита",
			Authors:        "Михаил Булгаков",
			Language:       "ru",
			Genre:          "Novel",
			LocationLevel1: "Office",
			LocationLevel2: "White shelf",
			ReadingStatus:  domain.StatusRead,
		},
		{
			Title:          "Преступление и наказание",
			Authors:        "Фёдор Достоевский",
			Language:       "ru",
			Genre:          "Novel",
			LocationLevel1: "Bedroom",
			LocationLevel2: "Nightstand",
			ReadingStatus:  domain.StatusNotRead,
		},
		{
			Title:          "活着",
			Authors:        "余华",
			Language:       "zh",
			Genre:          "Novel",
			LocationLevel1: "Living room",
			LocationLevel2: "Corner shelf",
			LocationLevel3: "Middle row",
			LocationLevel4: "Left stack",
			ReadingStatus:  domain.StatusNotRead,
		},
		{
			Title:          "The Go Programming Language",
			Authors:        "Alan A. A. Donovan, Brian W. Kernighan",
			Language:       "en",
			Genre:          "Programming",
			LocationLevel1: "Office",
			LocationLevel2: "Desk",
			ReadingStatus:  domain.StatusReading,
		},
		{
			Title:          "Der Prozess",
			Authors:        "Franz Kafka",
			Language:       "de",
			LocationLevel1: "Bedroom",
			ReadingStatus:  domain.StatusNotRead,
		},
	}
}
