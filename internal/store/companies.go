package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/overnightmvp/7-day/internal/models"
)

// CreateCompanyWithAdmin registers a company and its admin user in one
// transaction, so a failed user insert leaves no orphaned company behind.
func (s *Store) CreateCompanyWithAdmin(ctx context.Context, name, adminEmail string) (models.Company, models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Company{}, models.User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	company := models.Company{ID: s.newID(), Name: name, AdminEmail: adminEmail}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO companies (id, name, admin_email)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, company.ID, company.Name, company.AdminEmail).Scan(&company.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Company{}, models.User{}, ErrCompanyExists
		}
		return models.Company{}, models.User{}, fmt.Errorf("insert company: %w", err)
	}

	admin, err := insertUser(ctx, tx, s.newID(), company.ID, adminEmail, models.RoleAdmin)
	if err != nil {
		return models.Company{}, models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Company{}, models.User{}, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	admin.Company = &company
	return company, admin, nil
}

// FindCompanyByEmailDomain returns the oldest company whose admin email is on
// the given domain. The domain is compared as a literal, case-insensitively.
func (s *Store) FindCompanyByEmailDomain(ctx context.Context, domain string) (models.Company, error) {
	var c models.Company
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, admin_email, created_at
		FROM companies
		WHERE LOWER(split_part(admin_email, '@', 2)) = LOWER($1)
		ORDER BY created_at ASC
		LIMIT 1
	`, domain).Scan(&c.ID, &c.Name, &c.AdminEmail, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Company{}, ErrCompanyNotFound
		}
		return models.Company{}, fmt.Errorf("lookup company by domain: %w", err)
	}
	return c, nil
}

// GetCompany loads a company by id.
func (s *Store) GetCompany(ctx context.Context, id string) (models.Company, error) {
	var c models.Company
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, admin_email, created_at
		FROM companies
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.AdminEmail, &c.CreatedAt)
	if err != nil {
		if isMissing(err) {
			return models.Company{}, ErrCompanyNotFound
		}
		return models.Company{}, fmt.Errorf("select company: %w", err)
	}
	return c, nil
}

// ListCompanies returns every company, newest first.
func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, admin_email, created_at
		FROM companies
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.AdminEmail, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}
