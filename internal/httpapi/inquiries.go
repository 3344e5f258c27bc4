package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/models"
)

func (s *Server) handleSubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var form booking.Form
	if err := decodeJSON(w, r, &form, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	inq, err := s.inquiries.Submit(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Message string         `json:"message"`
		Inquiry models.Inquiry `json:"inquiry"`
	}{Message: msgBookingSubmitted, Inquiry: inq})
}

// handleListInquiries accepts ?status=a,b (repeatable) and ?limit=n.
func (s *Server) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter models.InquiryFilter
	for _, raw := range query["status"] {
		for _, st := range strings.Split(raw, ",") {
			if st = strings.TrimSpace(st); st != "" {
				filter.Statuses = append(filter.Statuses, models.InquiryStatus(st))
			}
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			writeBadRequest(w, fmt.Errorf("invalid limit %q", limitStr))
			return
		}
		filter.Limit = limit
	}

	list, err := s.inquiries.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Inquiries []models.Inquiry `json:"inquiries"`
	}{Inquiries: list})
}

func (s *Server) handleInquirySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.inquiries.Summary(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGetInquiry(w http.ResponseWriter, r *http.Request) {
	inq, err := s.inquiries.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inq)
}

func (s *Server) handleUpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	inq, err := s.inquiries.UpdateStatus(r.Context(), mux.Vars(r)["id"], models.InquiryStatus(req.Status))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inq)
}
