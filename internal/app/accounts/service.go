// Package accounts handles company and employee signup, sign-in and the
// admin tools for managing a company's people.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/logging"
	"github.com/overnightmvp/7-day/internal/models"
	"github.com/overnightmvp/7-day/internal/store"
)

var (
	// ErrCompanyNotFound is returned when an employee signs up before their company.
	ErrCompanyNotFound = errors.New("no company registered for email domain")
	// ErrUserNotFound is returned when signing in with an unknown email.
	ErrUserNotFound = errors.New("no user with that email")
	// ErrInvalidEmail is returned for addresses without a basic email shape.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrCompanyNameRequired is returned when registering a company without a name.
	ErrCompanyNameRequired = errors.New("company name is required")
	// ErrNoEmployees is returned when a bulk add contains no addresses.
	ErrNoEmployees = errors.New("at least one employee email is required")
)

// Store describes the persistence operations required by the account service.
type Store interface {
	CreateCompanyWithAdmin(ctx context.Context, name, adminEmail string) (models.Company, models.User, error)
	FindCompanyByEmailDomain(ctx context.Context, domain string) (models.Company, error)
	GetCompany(ctx context.Context, id string) (models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	CreateUser(ctx context.Context, companyID, email string, role models.Role) (models.User, error)
	AddEmployees(ctx context.Context, companyID string, emails []string) ([]models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsersByCompany(ctx context.Context, companyID string) ([]models.User, error)
}

// TokenIssuer signs session tokens for signed-in users.
type TokenIssuer interface {
	Issue(user models.User) (string, time.Time, error)
}

// Session is the outcome of a successful signup or sign-in.
type Session struct {
	User         models.User     `json:"user"`
	UserType     models.UserType `json:"user_type"`
	Token        string          `json:"token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	RedirectPath string          `json:"redirect_path"`
}

// Service exposes account workflows.
type Service interface {
	DetectUserType(email string) models.UserType
	SignUp(ctx context.Context, email, companyName string) (Session, error)
	SignIn(ctx context.Context, email, intendedPath string) (Session, error)
	RegisterCompany(ctx context.Context, name, adminEmail string) (models.Company, models.User, error)
	AddEmployees(ctx context.Context, companyID, emailList string) ([]models.User, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListUsers(ctx context.Context, companyID string) ([]models.User, error)
}

type service struct {
	store     Store
	detector  *Detector
	tokens    TokenIssuer
	operators map[string]bool
	logger    *logging.Logger
}

// New wires a Service. Admins whose email is in operatorEmails sign in with
// the operator role.
func New(store Store, detector *Detector, tokens TokenIssuer, operatorEmails []string, logger *logging.Logger) Service {
	operators := make(map[string]bool, len(operatorEmails))
	for _, email := range operatorEmails {
		operators[normaliseEmail(email)] = true
	}
	return &service{store: store, detector: detector, tokens: tokens, operators: operators, logger: logger}
}

func (s *service) DetectUserType(email string) models.UserType {
	return s.detector.DetectUserType(normaliseEmail(email))
}

// SignUp creates a company and its admin when a company address comes with
// a company name. Every other signup joins the company registered for the
// email's domain as an employee.
func (s *service) SignUp(ctx context.Context, email, companyName string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	email = normaliseEmail(email)
	if !booking.ValidEmail(email) {
		return Session{}, ErrInvalidEmail
	}
	companyName = strings.TrimSpace(companyName)

	userType := s.detector.DetectUserType(email)
	if userType == models.UserTypeCompany && companyName != "" {
		_, admin, err := s.RegisterCompany(ctx, companyName, email)
		if err != nil {
			return Session{}, err
		}
		return s.session(admin, userType, "")
	}

	company, err := s.store.FindCompanyByEmailDomain(ctx, EmailDomain(email))
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return Session{}, ErrCompanyNotFound
		}
		return Session{}, err
	}

	user, err := s.store.CreateUser(ctx, company.ID, email, models.RoleEmployee)
	if err != nil {
		return Session{}, err
	}
	user.Company = &company

	s.logger.WithContext(ctx).Info().
		Str("user_id", user.ID).
		Str("company_id", company.ID).
		Msg("employee signed up")
	return s.session(user, models.UserTypeEmployee, "")
}

// SignIn looks the user up by email and issues a session token.
func (s *service) SignIn(ctx context.Context, email, intendedPath string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	user, err := s.store.UserByEmail(ctx, normaliseEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return Session{}, ErrUserNotFound
		}
		return Session{}, err
	}

	userType := models.UserTypeEmployee
	if user.Role.CanAdminister() {
		userType = models.UserTypeCompany
	}
	return s.session(user, userType, intendedPath)
}

// RegisterCompany creates a company and its admin user atomically.
func (s *service) RegisterCompany(ctx context.Context, name, adminEmail string) (models.Company, models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.Company{}, models.User{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Company{}, models.User{}, ErrCompanyNameRequired
	}
	adminEmail = normaliseEmail(adminEmail)
	if !booking.ValidEmail(adminEmail) {
		return models.Company{}, models.User{}, ErrInvalidEmail
	}

	company, admin, err := s.store.CreateCompanyWithAdmin(ctx, name, adminEmail)
	if err != nil {
		return models.Company{}, models.User{}, err
	}

	s.logger.WithContext(ctx).Info().
		Str("company_id", company.ID).
		Str("admin_email", adminEmail).
		Msg("company registered")
	return company, admin, nil
}

// AddEmployees adds one employee per non-blank line of emailList.
func (s *service) AddEmployees(ctx context.Context, companyID, emailList string) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emails, err := ParseEmailList(emailList)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}

	users, err := s.store.AddEmployees(ctx, companyID, emails)
	if err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info().
		Str("company_id", companyID).
		Int("count", len(users)).
		Msg("employees added")
	return users, nil
}

func (s *service) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListCompanies(ctx)
}

func (s *service) ListUsers(ctx context.Context, companyID string) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}
	return s.store.ListUsersByCompany(ctx, companyID)
}

func (s *service) session(user models.User, userType models.UserType, intendedPath string) (Session, error) {
	if user.Role == models.RoleAdmin && s.operators[user.Email] {
		user.Role = models.RoleOperator
	}
	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, fmt.Errorf("issue session: %w", err)
	}
	return Session{
		User:         user,
		UserType:     userType,
		Token:        token,
		ExpiresAt:    expires,
		RedirectPath: RedirectPath(&user, intendedPath),
	}, nil
}

// ParseEmailList splits a newline-separated list, trimming each line and
// dropping blanks and repeats. Every remaining entry must look like an email.
func ParseEmailList(raw string) ([]string, error) {
	var emails, bad []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(raw, "\n") {
		email := normaliseEmail(line)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		if !booking.ValidEmail(email) {
			bad = append(bad, email)
			continue
		}
		emails = append(emails, email)
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, strings.Join(bad, ", "))
	}
	if len(emails) == 0 {
		return nil, ErrNoEmployees
	}
	return emails, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
