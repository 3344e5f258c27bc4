package httpapi

import (
	"errors"
	"net/http"

	"github.com/overnightmvp/7-day/internal/app/accounts"
	"github.com/overnightmvp/7-day/internal/app/bookings"
	"github.com/overnightmvp/7-day/internal/app/experiences"
	"github.com/overnightmvp/7-day/internal/app/inquiries"
	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/quiz"
	"github.com/overnightmvp/7-day/internal/store"
)

// Messages shown verbatim by the web client.
const (
	msgCompanyNotFound  = "Company not found. Please ask your admin to set up 7DAY first."
	msgUserNotFound     = "User not found. Please sign up first."
	msgInvalidEmail     = "Please enter a valid email address"
	msgEmployeeNotFound = "Employee not found. Please contact your admin."
	msgValidationFailed = "Please correct the highlighted fields"
	msgBookingSubmitted = "Booking submitted successfully! Waiting for admin approval."
	msgForbidden        = "forbidden"
)

// writeServiceError maps service and store errors onto a status and a
// client-facing message. Unrecognised errors are logged and hidden.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs booking.Errors
	if errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: msgValidationFailed, Fields: fieldErrs})
		return
	}

	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, inquiries.ErrSubmissionFailed):
		status, msg = http.StatusBadGateway, inquiries.SubmissionFailedMessage

	case errors.Is(err, accounts.ErrCompanyNotFound):
		status, msg = http.StatusNotFound, msgCompanyNotFound
	case errors.Is(err, accounts.ErrUserNotFound):
		status, msg = http.StatusNotFound, msgUserNotFound
	case errors.Is(err, bookings.ErrEmployeeNotFound):
		status, msg = http.StatusNotFound, msgEmployeeNotFound
	case errors.Is(err, accounts.ErrInvalidEmail):
		status, msg = http.StatusBadRequest, msgInvalidEmail

	case errors.Is(err, catalog.ErrVenueNotFound),
		errors.Is(err, store.ErrInquiryNotFound),
		errors.Is(err, store.ErrBookingNotFound),
		errors.Is(err, store.ErrCompanyNotFound),
		errors.Is(err, store.ErrUserNotFound):
		status, msg = http.StatusNotFound, err.Error()

	case errors.Is(err, store.ErrCompanyExists),
		errors.Is(err, store.ErrEmailTaken):
		status, msg = http.StatusConflict, err.Error()

	case errors.Is(err, experiences.ErrIncompleteQuiz),
		errors.Is(err, experiences.ErrUnknownQuizAction),
		errors.Is(err, quiz.ErrUnanswered),
		errors.Is(err, quiz.ErrInvalidOption),
		errors.Is(err, quiz.ErrFinished),
		errors.Is(err, quiz.ErrInvalidState),
		errors.Is(err, experiences.ErrInvalidTeamSize),
		errors.Is(err, inquiries.ErrInvalidStatus),
		errors.Is(err, bookings.ErrInvalidStatus),
		errors.Is(err, bookings.ErrInvalidDates),
		errors.Is(err, bookings.ErrInvalidGuests),
		errors.Is(err, accounts.ErrCompanyNameRequired),
		errors.Is(err, accounts.ErrNoEmployees):
		status, msg = http.StatusBadRequest, err.Error()

	default:
		s.logger.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
