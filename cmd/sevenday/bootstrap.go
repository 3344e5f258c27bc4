package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/overnightmvp/7-day/internal/config"
	"github.com/overnightmvp/7-day/internal/logging"
	"github.com/overnightmvp/7-day/internal/store"
)

// bootstrapAdmin creates the configured company and its admin unless the
// admin already exists. It is a no-op before migrations have run.
func bootstrapAdmin(ctx context.Context, db *sql.DB, dataStore *store.Store, cfg config.BootstrapConfig, logger *logging.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	ready, err := tableExists(ctx, db, "companies")
	if err != nil {
		return fmt.Errorf("check companies table: %w", err)
	}
	if !ready {
		logger.Warn("companies table missing, skipping admin bootstrap")
		return nil
	}

	if _, err := dataStore.UserByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	company, _, err := dataStore.CreateCompanyWithAdmin(ctx, cfg.CompanyName, cfg.AdminEmail)
	if err != nil {
		if errors.Is(err, store.ErrCompanyExists) {
			return nil
		}
		return fmt.Errorf("bootstrap company: %w", err)
	}

	logger.WithContext(ctx).Info().
		Str("company_id", company.ID).
		Str("admin_email", cfg.AdminEmail).
		Msg("bootstrap company created")
	return nil
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
