package store

import (
	"context"
	"fmt"

	"github.com/overnightmvp/7-day/internal/models"
)

// CreateBooking inserts an employee booking request.
func (s *Store) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	b.ID = s.newID()
	if b.Status == "" {
		b.Status = models.BookingStatusPending
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO bookings (id, user_id, experience_id, start_date, end_date, guests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, b.ID, b.UserID, b.ExperienceID, b.StartDate, b.EndDate, b.Guests, string(b.Status)).Scan(&b.CreatedAt)
	if err != nil {
		return models.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

// ListBookings returns booking requests newest first. An empty companyID
// lists every company and an empty status lists all statuses.
func (s *Store) ListBookings(ctx context.Context, companyID string, status models.BookingStatus) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.experience_id, b.start_date, b.end_date, b.guests,
			b.status, b.created_at, u.email
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE ($1::text = '' OR u.company_id::text = $1)
			AND ($2::text = '' OR b.status = $2)
		ORDER BY b.created_at DESC
	`, companyID, string(status))
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var (
			b  models.Booking
			st string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.ExperienceID, &b.StartDate, &b.EndDate, &b.Guests,
			&st, &b.CreatedAt, &b.UserEmail); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Status = models.BookingStatus(st)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus approves or rejects a booking request. With a non-empty
// companyID, bookings made by other companies' employees are reported as
// missing.
func (s *Store) UpdateBookingStatus(ctx context.Context, companyID, id string, status models.BookingStatus) (models.Booking, error) {
	var (
		b  models.Booking
		st string
	)
	err := s.db.QueryRowContext(ctx, `
		UPDATE bookings b
		SET status = $2
		FROM users u
		WHERE b.id = $1
			AND u.id = b.user_id
			AND ($3::text = '' OR u.company_id::text = $3)
		RETURNING b.id, b.user_id, b.experience_id, b.start_date, b.end_date, b.guests,
			b.status, b.created_at, u.email
	`, id, string(status), companyID).Scan(&b.ID, &b.UserID, &b.ExperienceID, &b.StartDate, &b.EndDate, &b.Guests,
		&st, &b.CreatedAt, &b.UserEmail)
	if err != nil {
		if isMissing(err) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("update booking status: %w", err)
	}
	b.Status = models.BookingStatus(st)
	return b, nil
}
