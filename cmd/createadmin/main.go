package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/repository"
	"katalog/internal/session"
)

// createadmin provisions an admin account. The password may be given with
// -password or the ADMIN_PASSWORD environment variable.
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (min 8 characters)")
	flag.Parse()

	if err := run(*email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(email, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	admin, err := session.CreateAdmin(ctx, repository.NewAdminUserRepository(pool, logger), email, password)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("Created admin %s (id %d)\n", admin.Email, admin.ID)
	return nil
}
