package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/platform/config"
)

// Seed ensures the bootstrap HR account exists. It runs against any
// directory store so the memory driver starts with the same account.
func Seed(ctx context.Context, users *directory.Service, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedHRUsername) == "" || strings.TrimSpace(cfg.SeedHRPassword) == "" {
		slog.Warn("seed skipped: SEED_HR_USERNAME or SEED_HR_PASSWORD empty")
		return nil
	}

	existing, err := users.ListByRole(ctx, auth.RoleHR)
	if err != nil {
		return err
	}
	for _, u := range existing {
		if strings.EqualFold(u.Username, cfg.SeedHRUsername) {
			return nil
		}
	}

	email := cfg.SeedHREmail
	if email == "" {
		email = cfg.SeedHRUsername + "@example.com"
	}
	created, err := users.Create(ctx, directory.NewUser{
		Name:     cfg.SeedHRName,
		Email:    email,
		Phone:    "0000000000",
		Username: cfg.SeedHRUsername,
		Password: cfg.SeedHRPassword,
		Role:     auth.RoleHR,
	})
	if errors.Is(err, directory.ErrUsernameTaken) {
		slog.Warn("seed username held by a non-HR user", "username", cfg.SeedHRUsername)
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("seeded hr user", "userId", created.ID, "username", created.Username)
	return nil
}
