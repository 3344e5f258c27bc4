package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/overnightmvp/7-day/internal/app/accounts"
	"github.com/overnightmvp/7-day/internal/app/bookings"
	"github.com/overnightmvp/7-day/internal/app/experiences"
	"github.com/overnightmvp/7-day/internal/auth"
	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/logging"
	"github.com/overnightmvp/7-day/internal/matching"
	"github.com/overnightmvp/7-day/internal/models"
	"github.com/overnightmvp/7-day/internal/quiz"
)

// maxBodyBytes bounds request bodies; the largest is a bulk employee list.
const maxBodyBytes = 1 << 20

// ExperienceService covers the public catalogue and quiz workflows.
type ExperienceService interface {
	Steps(ctx context.Context) ([]quiz.Step, error)
	List(ctx context.Context) ([]experiences.Experience, error)
	Get(ctx context.Context, id string) (experiences.Experience, error)
	Match(ctx context.Context, answers quiz.Response) ([]matching.Result, error)
	Advance(ctx context.Context, move experiences.QuizMove) (experiences.QuizProgress, error)
	Estimate(ctx context.Context, id string, teamSize int) (experiences.Estimate, error)
	BookingForm(ctx context.Context, id string, answers *quiz.Response) (experiences.BookingForm, error)
}

// InquiryService captures booking inquiry submission and the admin lead board.
type InquiryService interface {
	Submit(ctx context.Context, experienceID string, form booking.Form) (models.Inquiry, error)
	List(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, error)
	Get(ctx context.Context, id string) (models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) (models.Inquiry, error)
	Summary(ctx context.Context) (models.InquirySummary, error)
}

// AccountService describes signup, sign-in and company administration.
type AccountService interface {
	DetectUserType(email string) models.UserType
	SignUp(ctx context.Context, email, companyName string) (accounts.Session, error)
	SignIn(ctx context.Context, email, intendedPath string) (accounts.Session, error)
	RegisterCompany(ctx context.Context, name, adminEmail string) (models.Company, models.User, error)
	AddEmployees(ctx context.Context, companyID, emailList string) ([]models.User, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListUsers(ctx context.Context, companyID string) ([]models.User, error)
}

// BookingService coordinates employee booking requests. An empty companyID
// covers every company.
type BookingService interface {
	Create(ctx context.Context, req bookings.Request) (models.Booking, error)
	List(ctx context.Context, companyID string, status models.BookingStatus) ([]models.Booking, error)
	SetStatus(ctx context.Context, companyID, id string, status models.BookingStatus) (models.Booking, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	experiences ExperienceService
	inquiries   InquiryService
	accounts    AccountService
	bookings    BookingService
	tokens      auth.Verifier
	logger      *logging.Logger
}

// New configures a Server. Admin routes accept tokens that tokens verifies.
func New(
	experiences ExperienceService,
	inquiries InquiryService,
	accounts AccountService,
	bookings BookingService,
	tokens auth.Verifier,
	logger *logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		experiences: experiences,
		inquiries:   inquiries,
		accounts:    accounts,
		bookings:    bookings,
		tokens:      tokens,
		logger:      logger,
	}
}

// Routes exposes the public marketplace API and the admin API.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/quiz", s.handleQuizSteps).Methods(http.MethodGet)
	api.HandleFunc("/quiz/matches", s.handleQuizMatches).Methods(http.MethodPost)
	api.HandleFunc("/quiz/progress", s.handleQuizProgress).Methods(http.MethodPost)

	api.HandleFunc("/experiences", s.handleListExperiences).Methods(http.MethodGet)
	api.HandleFunc("/experiences/{id}", s.handleGetExperience).Methods(http.MethodGet)
	api.HandleFunc("/experiences/{id}/estimate", s.handleEstimate).Methods(http.MethodPost)
	api.HandleFunc("/experiences/{id}/booking-form", s.handleBookingForm).Methods(http.MethodPost)
	api.HandleFunc("/experiences/{id}/inquiries", s.handleSubmitInquiry).Methods(http.MethodPost)

	api.HandleFunc("/auth/detect", s.handleDetect).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", s.handleSignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", s.handleSignIn).Methods(http.MethodPost)

	api.HandleFunc("/bookings", s.handleCreateBooking).Methods(http.MethodPost)

	// Company admins manage their own company; operators see every company
	// and the lead board.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireRole(s.tokens, models.RoleAdmin, models.RoleOperator))

	admin.HandleFunc("/companies", requireOperator(s.handleListCompanies)).Methods(http.MethodGet)
	admin.HandleFunc("/companies", requireOperator(s.handleRegisterCompany)).Methods(http.MethodPost)
	admin.HandleFunc("/companies/{id}/users", s.handleListCompanyUsers).Methods(http.MethodGet)
	admin.HandleFunc("/companies/{id}/employees", s.handleAddEmployees).Methods(http.MethodPost)

	admin.HandleFunc("/inquiries", requireOperator(s.handleListInquiries)).Methods(http.MethodGet)
	admin.HandleFunc("/inquiries/summary", requireOperator(s.handleInquirySummary)).Methods(http.MethodGet)
	admin.HandleFunc("/inquiries/{id}", requireOperator(s.handleGetInquiry)).Methods(http.MethodGet)
	admin.HandleFunc("/inquiries/{id}/status", requireOperator(s.handleUpdateInquiryStatus)).Methods(http.MethodPut)

	admin.HandleFunc("/bookings", s.handleListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", s.handleUpdateBookingStatus).Methods(http.MethodPut)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// decodeJSON reads a single JSON object into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// requireOperator restricts an admin route to platform operators.
func requireOperator(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok || claims.Role != models.RoleOperator {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: msgForbidden})
			return
		}
		next(w, r)
	}
}

// companyScope is the company an admin request is limited to. Operators get
// "" and may act on any company.
func companyScope(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	if claims.Role == models.RoleOperator {
		return "", true
	}
	return claims.CompanyID, claims.CompanyID != ""
}

// authorizeCompany writes 403 unless the caller may manage companyID.
func authorizeCompany(w http.ResponseWriter, r *http.Request, companyID string) bool {
	scope, ok := companyScope(r)
	if !ok || (scope != "" && scope != companyID) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: msgForbidden})
		return false
	}
	return true
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
