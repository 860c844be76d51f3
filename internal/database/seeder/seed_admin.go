package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Suly-ms/ThisIsNotFine/internal/config"
	"github.com/Suly-ms/ThisIsNotFine/internal/database"
)

// AdminSeeder bootstraps the first administrator account from the
// environment. Without credentials configured it is a no-op, so production
// never grows a default admin by accident.
type AdminSeeder struct {
	Cfg config.SeedConfig
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Cfg.AdminEmail))
	password := s.Cfg.AdminPassword
	if email == "" || password == "" {
		return nil
	}

	if err := EnsureTableColumns(ctx, db, "accounts", "id", "email", "password_hash", "role", "admin"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO accounts
		 (id, first_name, last_name, email, password_hash, role, admin, email_verified, admin_verified)
		 VALUES ($1, 'Admin', 'System', $2, $3, 'ADMIN', TRUE, TRUE, TRUE)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email, string(hash),
	)
	return err
}
