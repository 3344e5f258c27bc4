// Package inquiries runs the booking inquiry workflow: submission from the
// public booking form and the admin lead board.
package inquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/logging"
	"github.com/overnightmvp/7-day/internal/models"
)

// SubmissionFailedMessage is shown to the customer when an inquiry cannot be stored.
const SubmissionFailedMessage = "Sorry, there was an issue submitting your booking. Please try again or contact us directly."

var (
	// ErrSubmissionFailed hides storage failures behind one user-facing outcome.
	ErrSubmissionFailed = errors.New("booking submission failed")
	// ErrInvalidStatus is returned for statuses outside the lead lifecycle.
	ErrInvalidStatus = errors.New("invalid inquiry status")
)

// openStatuses are leads still being worked; their estimates form the pipeline.
var openStatuses = []models.InquiryStatus{models.InquiryStatusPending, models.InquiryStatusContacted}

// Store describes the persistence operations required by the inquiry service.
type Store interface {
	CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error)
	ListInquiries(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, error)
	GetInquiry(ctx context.Context, id string) (models.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) (models.Inquiry, error)
	CountInquiriesByStatus(ctx context.Context) (map[models.InquiryStatus]int, error)
	SumEstimatedCost(ctx context.Context, statuses []models.InquiryStatus) (int, error)
}

// Notifier is told about every stored inquiry.
type Notifier interface {
	NotifyInquiryCreated(ctx context.Context, inq models.Inquiry)
}

// Service exposes inquiry workflows.
type Service interface {
	Submit(ctx context.Context, experienceID string, form booking.Form) (models.Inquiry, error)
	List(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, error)
	Get(ctx context.Context, id string) (models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) (models.Inquiry, error)
	Summary(ctx context.Context) (models.InquirySummary, error)
}

type service struct {
	store     Store
	catalog   *catalog.Catalog
	validator *booking.Validator
	notifier  Notifier
	logger    *logging.Logger
}

// New wires a Service. notifier may be nil.
func New(store Store, cat *catalog.Catalog, validator *booking.Validator, notifier Notifier, logger *logging.Logger) Service {
	return &service{
		store:     store,
		catalog:   cat,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit validates the form, prices it and stores exactly one pending
// inquiry. Validation failures are returned as booking.Errors. Nothing is
// retried or deduplicated.
func (s *service) Submit(ctx context.Context, experienceID string, form booking.Form) (models.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return models.Inquiry{}, err
	}

	venue, err := s.catalog.Get(experienceID)
	if err != nil {
		return models.Inquiry{}, err
	}

	form = trimForm(form)
	if errs := s.validator.Validate(form); len(errs) > 0 {
		return models.Inquiry{}, errs
	}

	inq, err := buildInquiry(venue, form)
	if err != nil {
		return models.Inquiry{}, err
	}

	created, err := s.store.CreateInquiry(ctx, inq)
	if err != nil {
		s.logger.WithContext(ctx).Error().Err(err).
			Str("experience_id", venue.ID).
			Msg("booking submission error")
		return models.Inquiry{}, ErrSubmissionFailed
	}

	s.logger.WithContext(ctx).Info().
		Str("inquiry_id", created.ID).
		Str("experience_id", created.ExperienceID).
		Int("team_size", created.TeamSize).
		Int("estimated_cost", created.EstimatedCost).
		Msg("inquiry submitted")

	if s.notifier != nil {
		go s.notifier.NotifyInquiryCreated(context.WithoutCancel(ctx), created)
	}
	return created, nil
}

func (s *service) List(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, st)
		}
	}
	return s.store.ListInquiries(ctx, filter)
}

func (s *service) Get(ctx context.Context, id string) (models.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return models.Inquiry{}, err
	}
	return s.store.GetInquiry(ctx, id)
}

// UpdateStatus moves a lead to any known status; transitions are unconstrained.
func (s *service) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) (models.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return models.Inquiry{}, err
	}
	if !status.Valid() {
		return models.Inquiry{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	inq, err := s.store.UpdateInquiryStatus(ctx, id, status)
	if err != nil {
		return models.Inquiry{}, err
	}

	s.logger.WithContext(ctx).Info().
		Str("inquiry_id", id).
		Str("status", string(status)).
		Msg("inquiry status updated")
	return inq, nil
}

// Summary counts leads per status and totals the estimates of open leads.
func (s *service) Summary(ctx context.Context) (models.InquirySummary, error) {
	if err := ctx.Err(); err != nil {
		return models.InquirySummary{}, err
	}

	var (
		counts   map[models.InquiryStatus]int
		pipeline int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.store.CountInquiriesByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pipeline, err = s.store.SumEstimatedCost(gctx, openStatuses)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.InquirySummary{}, fmt.Errorf("summarise inquiries: %w", err)
	}

	summary := models.InquirySummary{
		ByStatus: make(map[models.InquiryStatus]int, len(models.InquiryStatuses)),
		Pipeline: pipeline,
	}
	for _, st := range models.InquiryStatuses {
		summary.ByStatus[st] = counts[st]
		summary.Total += counts[st]
	}
	return summary, nil
}

func trimForm(f booking.Form) booking.Form {
	f.WorkEmail = strings.TrimSpace(f.WorkEmail)
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.ContactName = strings.TrimSpace(f.ContactName)
	f.Phone = strings.TrimSpace(f.Phone)
	f.PreferredDate = strings.TrimSpace(f.PreferredDate)
	f.AlternateDate = strings.TrimSpace(f.AlternateDate)
	f.SpecialRequests = strings.TrimSpace(f.SpecialRequests)
	return f
}

func buildInquiry(venue catalog.Venue, f booking.Form) (models.Inquiry, error) {
	preferred, err := booking.ParseDate(f.PreferredDate)
	if err != nil {
		return models.Inquiry{}, err
	}

	inq := models.Inquiry{
		WorkEmail:       f.WorkEmail,
		CompanyName:     f.CompanyName,
		ContactName:     f.ContactName,
		Phone:           f.Phone,
		TeamSize:        f.TeamSize,
		PreferredDate:   preferred,
		SpecialRequests: f.SpecialRequests,
		ExperienceID:    venue.ID,
		ExperienceTitle: venue.Title,
		EstimatedCost:   booking.EstimateCost(venue, f.TeamSize),
		Status:          models.InquiryStatusPending,
	}
	if f.AlternateDate != "" {
		alt, err := booking.ParseDate(f.AlternateDate)
		if err != nil {
			return models.Inquiry{}, err
		}
		inq.AlternateDate = &alt
	}
	return inq, nil
}
