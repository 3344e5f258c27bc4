package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInquiryNotFound is returned when no inquiry has the requested id.
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrCompanyNotFound is returned when no company matches the lookup.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrCompanyExists signals a company is already registered for the admin email.
	ErrCompanyExists = errors.New("company already exists")
	// ErrUserNotFound is returned when no user has the requested email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken signals the email already belongs to a user.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBookingNotFound is returned when no booking has the requested id.
	ErrBookingNotFound = errors.New("booking not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db    *sql.DB
	newID func() string
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db, newID: uuid.NewString}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isMissing reports whether a lookup by id found nothing. Ids that are not
// valid uuids cannot match a row and fail with invalid_text_representation.
func isMissing(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// violatedConstraint returns the constraint name of a Postgres error, if any.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
