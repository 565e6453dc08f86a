package seed

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
)

// Seed creates the default organization and admin user on first boot.
// Idempotent: an existing organization with the seed name short-circuits.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var orgID string
	err := pool.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", cfg.SeedOrgName).Scan(&orgID)
	if err == nil {
		return nil
	}

	if err := pool.QueryRow(ctx, `
    INSERT INTO organizations (name) VALUES ($1) RETURNING id
  `, cfg.SeedOrgName).Scan(&orgID); err != nil {
		return err
	}

	email := strings.TrimSpace(cfg.SeedAdminEmail)
	password := cfg.SeedAdminPassword
	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123"
		slog.Warn("seeding admin user with default password, change it immediately", "email", email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
    INSERT INTO users (organization_id, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (email) DO NOTHING
  `, orgID, email, hash, auth.RoleAdmin); err != nil {
		return err
	}

	slog.Info("seeded default organization", "organization", cfg.SeedOrgName, "admin", email)
	return nil
}
