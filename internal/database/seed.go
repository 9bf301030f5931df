package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// seedUser is a development account created by Seed.
type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@blogpress.local", password: "admin", role: "admin"},
	{name: "Reader", email: "reader@blogpress.local", password: "reader", role: "user"},
}

var seedCategories = []string{"General", "Programming", "Announcements"}

// Seed populates the database with initial development data: an admin,
// a reader and a few categories. It does nothing once any user exists.
func Seed(ctx context.Context, db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (name, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
		`, u.name, u.email, string(hash), u.role)
		if err != nil {
			return fmt.Errorf("seed insert user %s: %w", u.email, err)
		}
	}

	for _, name := range seedCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (name) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("seed insert category %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	for _, u := range seedUsers {
		slog.Info("database seeded with development user",
			"email", u.email,
			"password", u.password,
			"role", u.role,
		)
	}

	return nil
}
