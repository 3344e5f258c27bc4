package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/overnightmvp/7-day/internal/models"
)

// execer is the subset of *sql.DB and *sql.Tx used for inserts.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateUser adds a user to an existing company.
func (s *Store) CreateUser(ctx context.Context, companyID, email string, role models.Role) (models.User, error) {
	return insertUser(ctx, s.db, s.newID(), companyID, email, role)
}

// AddEmployees inserts employee users for a company. Either all are created
// or none are.
func (s *Store) AddEmployees(ctx context.Context, companyID string, emails []string) ([]models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	users := make([]models.User, 0, len(emails))
	for _, email := range emails {
		u, err := insertUser(ctx, tx, s.newID(), companyID, email, models.RoleEmployee)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return users, nil
}

// UserByEmail loads a user and their company.
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var (
		u    models.User
		c    models.Company
		role string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.company_id, u.email, u.role, u.created_at,
			c.id, c.name, c.admin_email, c.created_at
		FROM users u
		JOIN companies c ON c.id = u.company_id
		WHERE LOWER(u.email) = LOWER($1)
	`, email).Scan(
		&u.ID, &u.CompanyID, &u.Email, &role, &u.CreatedAt,
		&c.ID, &c.Name, &c.AdminEmail, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	u.Role = models.Role(role)
	u.Company = &c
	return u, nil
}

// ListUsersByCompany returns a company's users, admins first.
func (s *Store) ListUsersByCompany(ctx context.Context, companyID string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, email, role, created_at
		FROM users
		WHERE company_id = $1
		ORDER BY role ASC, email ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var (
			u    models.User
			role string
		)
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Email, &role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = models.Role(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func insertUser(ctx context.Context, q execer, id, companyID, email string, role models.Role) (models.User, error) {
	u := models.User{ID: id, CompanyID: companyID, Email: email, Role: role}
	err := q.QueryRowContext(ctx, `
		INSERT INTO users (id, company_id, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, u.ID, u.CompanyID, u.Email, string(u.Role)).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		if violatedConstraint(err) == "users_company_id_fkey" {
			return models.User{}, ErrCompanyNotFound
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}
