// Command seed loads a small sample catalog for local development.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/pagebound/bookstore-api/internal/core/domain"
	"github.com/pagebound/bookstore-api/internal/infrastructure/config"
	mongodb "github.com/pagebound/bookstore-api/internal/infrastructure/db/mongo"
	"github.com/pagebound/bookstore-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	books := mongodb.NewBookRepository(db)
	if err := books.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	now := time.Now().UTC()
	samples := []*domain.Book{
		{
			Title:       "The Pragmatic Programmer",
			Authors:     []string{"Andrew Hunt", "David Thomas"},
			Price:       42.99,
			ReleaseDate: time.Date(2019, 9, 13, 0, 0, 0, 0, time.UTC),
			ISBN:        "978-0135957059",
			Stock:       12,
		},
		{
			Title:       "Designing Data-Intensive Applications",
			Authors:     []string{"Martin Kleppmann"},
			Price:       39.95,
			ReleaseDate: time.Date(2017, 3, 16, 0, 0, 0, 0, time.UTC),
			ISBN:        "978-1449373320",
			Stock:       7,
		},
		{
			Title:       "The Go Programming Language",
			Authors:     []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
			Price:       34.99,
			ReleaseDate: time.Date(2015, 11, 16, 0, 0, 0, 0, time.UTC),
			ISBN:        "978-0134190440",
			Stock:       20,
		},
		{
			Title:       "A Tour of C++",
			Authors:     []string{"Bjarne Stroustrup"},
			Price:       29.99,
			ReleaseDate: time.Date(2022, 9, 14, 0, 0, 0, 0, time.UTC),
			ISBN:        "978-0136816485",
			Stock:       5,
		},
	}

	seeded := 0
	for _, b := range samples {
		b.CreatedAt = now
		b.UpdatedAt = now
		if _, err := books.Create(ctx, b); err != nil {
			if errors.Is(err, domain.ErrISBNExists) {
				continue // already seeded
			}
			log.Fatal().Err(err).Str("isbn", b.ISBN).Msg("seed insert failed")
		}
		seeded++
	}

	log.Info().Int("inserted", seeded).Int("skipped", len(samples)-seeded).Msg("catalog seeded")
}
