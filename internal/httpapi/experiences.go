package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/overnightmvp/7-day/internal/app/experiences"
	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/matching"
	"github.com/overnightmvp/7-day/internal/quiz"
)

func (s *Server) handleQuizSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := s.experiences.Steps(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Steps []quiz.Step `json:"steps"`
	}{Steps: steps})
}

func (s *Server) handleQuizMatches(w http.ResponseWriter, r *http.Request) {
	var answers quiz.Response
	if err := decodeJSON(w, r, &answers, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	matches, err := s.experiences.Match(r.Context(), answers)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Matches []matching.Result `json:"matches"`
	}{Matches: matches})
}

// handleQuizProgress moves the step-by-step quiz. The client echoes back the
// state from the previous response.
func (s *Server) handleQuizProgress(w http.ResponseWriter, r *http.Request) {
	var move experiences.QuizMove
	if err := decodeJSON(w, r, &move, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	progress, err := s.experiences.Advance(r.Context(), move)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	list, err := s.experiences.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Experiences []experiences.Experience `json:"experiences"`
	}{Experiences: list})
}

func (s *Server) handleGetExperience(w http.ResponseWriter, r *http.Request) {
	exp, err := s.experiences.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		experiences.Experience
		TeamSizeOptions []int `json:"team_size_options"`
	}{Experience: exp, TeamSizeOptions: booking.TeamSizeOptions()})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamSize int `json:"teamSize"`
	}
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	est, err := s.experiences.Estimate(r.Context(), mux.Vars(r)["id"], req.TeamSize)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// handleBookingForm accepts the quiz answers, if any, as the request body.
func (s *Server) handleBookingForm(w http.ResponseWriter, r *http.Request) {
	var answers *quiz.Response
	if err := decodeJSON(w, r, &answers, true); err != nil {
		writeBadRequest(w, err)
		return
	}

	form, err := s.experiences.BookingForm(r.Context(), mux.Vars(r)["id"], answers)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}
