package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/overnightmvp/7-day/internal/app/bookings"
	"github.com/overnightmvp/7-day/internal/models"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookings.Request
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	b, err := s.bookings.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Message string         `json:"message"`
		Booking models.Booking `json:"booking"`
	}{Message: msgBookingSubmitted, Booking: b})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyScope(r)
	if !ok {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: msgForbidden})
		return
	}

	list, err := s.bookings.List(r.Context(), companyID, models.BookingStatus(r.URL.Query().Get("status")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Bookings []models.Booking `json:"bookings"`
	}{Bookings: list})
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyScope(r)
	if !ok {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: msgForbidden})
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	b, err := s.bookings.SetStatus(r.Context(), companyID, mux.Vars(r)["id"], models.BookingStatus(req.Status))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
