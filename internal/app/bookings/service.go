// Package bookings handles booking requests made by registered employees and
// their approval by company admins.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/logging"
	"github.com/overnightmvp/7-day/internal/models"
	"github.com/overnightmvp/7-day/internal/store"
)

var (
	// ErrEmployeeNotFound is returned when the email does not belong to an employee.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrInvalidDates is returned for unparseable dates or an end before the start.
	ErrInvalidDates = errors.New("invalid booking dates")
	// ErrInvalidGuests is returned when fewer than one guest is requested.
	ErrInvalidGuests = errors.New("guests must be at least 1")
	// ErrInvalidStatus is returned for statuses outside pending, approved and rejected.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request is an employee's booking request as submitted.
type Request struct {
	UserEmail    string `json:"userEmail"`
	ExperienceID string `json:"experienceId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Guests       int    `json:"guests"`
}

// Store describes the persistence operations required by the booking service.
type Store interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	ListBookings(ctx context.Context, companyID string, status models.BookingStatus) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, companyID, id string, status models.BookingStatus) (models.Booking, error)
}

// Service exposes employee booking workflows. List and SetStatus only see
// bookings made by companyID's employees; an empty companyID sees them all.
type Service interface {
	Create(ctx context.Context, req Request) (models.Booking, error)
	List(ctx context.Context, companyID string, status models.BookingStatus) ([]models.Booking, error)
	SetStatus(ctx context.Context, companyID, id string, status models.BookingStatus) (models.Booking, error)
}

type service struct {
	store   Store
	catalog *catalog.Catalog
	logger  *logging.Logger
}

// New wires a Service backed by the provided Store.
func New(store Store, cat *catalog.Catalog, logger *logging.Logger) Service {
	return &service{store: store, catalog: cat, logger: logger}
}

// Create records a pending booking for the employee owning req.UserEmail.
func (s *service) Create(ctx context.Context, req Request) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}

	venue, err := s.catalog.Get(req.ExperienceID)
	if err != nil {
		return models.Booking{}, err
	}

	start, err := booking.ParseDate(req.StartDate)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: start date", ErrInvalidDates)
	}
	end, err := booking.ParseDate(req.EndDate)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: end date", ErrInvalidDates)
	}
	if end.Before(start) {
		return models.Booking{}, fmt.Errorf("%w: end date before start date", ErrInvalidDates)
	}
	if req.Guests < 1 {
		return models.Booking{}, ErrInvalidGuests
	}

	user, err := s.store.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.UserEmail)))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Booking{}, ErrEmployeeNotFound
		}
		return models.Booking{}, err
	}
	if user.Role != models.RoleEmployee {
		return models.Booking{}, ErrEmployeeNotFound
	}

	b, err := s.store.CreateBooking(ctx, models.Booking{
		UserID:       user.ID,
		ExperienceID: venue.ID,
		StartDate:    start,
		EndDate:      end,
		Guests:       req.Guests,
		Status:       models.BookingStatusPending,
	})
	if err != nil {
		return models.Booking{}, err
	}
	b.UserEmail = user.Email

	s.logger.WithContext(ctx).Info().
		Str("booking_id", b.ID).
		Str("experience_id", venue.ID).
		Int("guests", b.Guests).
		Msg("booking requested")
	return b, nil
}

func (s *service) List(ctx context.Context, companyID string, status models.BookingStatus) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.ListBookings(ctx, companyID, status)
}

func (s *service) SetStatus(ctx context.Context, companyID, id string, status models.BookingStatus) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}
	if !status.Valid() {
		return models.Booking{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	b, err := s.store.UpdateBookingStatus(ctx, companyID, id, status)
	if err != nil {
		return models.Booking{}, err
	}

	s.logger.WithContext(ctx).Info().
		Str("booking_id", id).
		Str("status", string(status)).
		Msg("booking status updated")
	return b, nil
}
