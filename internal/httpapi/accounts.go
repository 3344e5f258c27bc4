package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/overnightmvp/7-day/internal/models"
)

type signUpRequest struct {
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
}

type signInRequest struct {
	Email        string `json:"email"`
	IntendedPath string `json:"intendedPath"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		UserType models.UserType `json:"user_type"`
	}{UserType: s.accounts.DetectUserType(req.Email)})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	session, err := s.accounts.SignUp(r.Context(), req.Email, req.CompanyName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	session, err := s.accounts.SignIn(r.Context(), req.Email, req.IntendedPath)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.accounts.ListCompanies(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Companies []models.Company `json:"companies"`
	}{Companies: companies})
}

func (s *Server) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		AdminEmail string `json:"adminEmail"`
	}
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	company, admin, err := s.accounts.RegisterCompany(r.Context(), req.Name, req.AdminEmail)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Company models.Company `json:"company"`
		Admin   models.User    `json:"admin"`
	}{Company: company, Admin: admin})
}

func (s *Server) handleListCompanyUsers(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["id"]
	if !authorizeCompany(w, r, companyID) {
		return
	}

	users, err := s.accounts.ListUsers(r.Context(), companyID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Users []models.User `json:"users"`
	}{Users: users})
}

// handleAddEmployees takes the raw textarea contents, one email per line.
func (s *Server) handleAddEmployees(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["id"]
	if !authorizeCompany(w, r, companyID) {
		return
	}

	var req struct {
		Emails string `json:"emails"`
	}
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeBadRequest(w, err)
		return
	}

	users, err := s.accounts.AddEmployees(r.Context(), companyID, req.Emails)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Users []models.User `json:"users"`
	}{Users: users})
}
