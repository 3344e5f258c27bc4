package models

import "time"

// BookingStatus is the approval state of an employee booking request.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected:
		return true
	}
	return false
}

// Booking is a request by an employee to book an experience for their team.
type Booking struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	ExperienceID string        `json:"experience_id"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Guests       int           `json:"guests"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`

	// Populated via JOIN queries
	UserEmail string `json:"user_email,omitempty"`
}
