package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/welldanyogia/inboxzero/internal/config"
	"github.com/welldanyogia/inboxzero/internal/database"
	"github.com/welldanyogia/inboxzero/internal/logger"
	"github.com/welldanyogia/inboxzero/internal/repository"
	"github.com/welldanyogia/inboxzero/internal/services"
)

func main() {
	email := flag.String("email", "", "address of the user whose mailbox is seeded")
	count := flag.Int("count", services.DefaultSeedCount, "number of emails to create")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -email user@example.com [-count 15]")
		os.Exit(2)
	}

	if err := run(*email, *count); err != nil {
		slog.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(email string, count int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		Production: cfg.IsProduction(),
		LogLevel:   cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	seeder := services.NewSeeder(
		repository.NewUserRepository(db),
		repository.NewEmailRepository(db),
		nil,
		log,
	)

	emails, err := seeder.SeedByEmail(context.Background(), email, count)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d emails for %s\n", len(emails), email)
	return nil
}
