// Command createadmin bootstraps an administrator account. Registration
// through the API always produces plain users; this is the only way to mint
// the first admin.
package main

import (
	"context"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pagebound/bookstore-api/internal/core/domain"
	"github.com/pagebound/bookstore-api/internal/infrastructure/config"
	mongodb "github.com/pagebound/bookstore-api/internal/infrastructure/db/mongo"
	"github.com/pagebound/bookstore-api/pkg/logger"
)

func main() {
	email := flag.String("email", "admin@bookstore.local", "admin email address")
	password := flag.String("password", "", "admin password (required)")
	givenName := flag.String("given-name", "Admin", "admin given name")
	surname := flag.String("surname", "User", "admin surname")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *password == "" {
		log.Fatal().Msg("-password is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	admin, err := users.Create(ctx, &domain.User{
		Email:        *email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		GivenName:    *givenName,
		Surname:      *surname,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}

	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin user created")
}
