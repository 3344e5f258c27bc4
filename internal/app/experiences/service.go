// Package experiences serves the venue catalogue, quiz recommendations and
// pre-submission pricing.
package experiences

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/matching"
	"github.com/overnightmvp/7-day/internal/quiz"
)

var (
	// ErrIncompleteQuiz is returned when matching is asked for before every
	// step is answered with a known option.
	ErrIncompleteQuiz = errors.New("quiz answers incomplete")
	// ErrInvalidTeamSize is returned when pricing a team outside 1..booking.MaxTeamSize.
	ErrInvalidTeamSize = fmt.Errorf("team size must be between 1 and %d", booking.MaxTeamSize)
	// ErrUnknownQuizAction is returned for a quiz move other than the QuizAction values.
	ErrUnknownQuizAction = errors.New("unknown quiz action")
)

// QuizAction is one interaction with the step-by-step quiz.
type QuizAction string

const (
	QuizSelect  QuizAction = "select"
	QuizNext    QuizAction = "next"
	QuizBack    QuizAction = "back"
	QuizRestart QuizAction = "restart"
)

// QuizMove applies Action, with Value for QuizSelect, to a saved position.
type QuizMove struct {
	State  quiz.State `json:"state"`
	Action QuizAction `json:"action"`
	Value  string     `json:"value,omitempty"`
}

// QuizProgress is the quiz after a move. Step is the question to show next;
// once every step is passed Done is set and Matches holds the recommendations.
type QuizProgress struct {
	State      quiz.State        `json:"state"`
	Step       *quiz.Step        `json:"step,omitempty"`
	TotalSteps int               `json:"total_steps"`
	Done       bool              `json:"done"`
	Matches    []matching.Result `json:"matches,omitempty"`
}

// Experience is a venue with its display price.
type Experience struct {
	catalog.Venue
	PriceLabel string `json:"price_label"`
}

// Estimate is the price of booking a venue for a whole team.
type Estimate struct {
	ExperienceID string `json:"experience_id"`
	TeamSize     int    `json:"team_size"`
	Units        int    `json:"units"` // venue-nights needed to fit the team
	Total        int    `json:"total"`
	TotalLabel   string `json:"total_label"`
}

// BookingForm is the booking modal's starting state for one venue.
type BookingForm struct {
	Experience      Experience   `json:"experience"`
	Form            booking.Form `json:"form"`
	TeamSizeOptions []int        `json:"team_size_options"`
	Estimate        Estimate     `json:"estimate"`
}

// Service exposes the catalogue workflows.
type Service interface {
	Steps(ctx context.Context) ([]quiz.Step, error)
	List(ctx context.Context) ([]Experience, error)
	Get(ctx context.Context, id string) (Experience, error)
	Match(ctx context.Context, answers quiz.Response) ([]matching.Result, error)
	Advance(ctx context.Context, move QuizMove) (QuizProgress, error)
	Estimate(ctx context.Context, id string, teamSize int) (Estimate, error)
	BookingForm(ctx context.Context, id string, answers *quiz.Response) (BookingForm, error)
}

type service struct {
	catalog *catalog.Catalog
}

// New wires a Service over cat.
func New(cat *catalog.Catalog) Service {
	return &service{catalog: cat}
}

func (s *service) Steps(ctx context.Context) ([]quiz.Step, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return quiz.Steps(), nil
}

func (s *service) List(ctx context.Context) ([]Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	venues := s.catalog.All()
	out := make([]Experience, len(venues))
	for i, v := range venues {
		out[i] = present(v)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (Experience, error) {
	if err := ctx.Err(); err != nil {
		return Experience{}, err
	}
	v, err := s.catalog.Get(id)
	if err != nil {
		return Experience{}, err
	}
	return present(v), nil
}

// Match recommends up to three venues for a fully answered quiz.
func (s *service) Match(ctx context.Context, answers quiz.Response) ([]matching.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if problems := quiz.Validate(answers); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteQuiz, describe(problems))
	}
	return matching.Match(answers, s.catalog.All()), nil
}

// Advance resumes the quiz at move.State, applies the move and reports where
// the respondent is now. Nothing is kept between calls.
func (s *service) Advance(ctx context.Context, move QuizMove) (QuizProgress, error) {
	if err := ctx.Err(); err != nil {
		return QuizProgress{}, err
	}
	w, err := quiz.Resume(move.State)
	if err != nil {
		return QuizProgress{}, err
	}

	switch move.Action {
	case QuizSelect:
		err = w.Select(move.Value)
	case QuizNext:
		err = w.Next()
	case QuizBack:
		w.Back()
	case QuizRestart:
		w.Restart()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownQuizAction, move.Action)
	}
	if err != nil {
		return QuizProgress{}, err
	}

	progress := QuizProgress{State: w.State(), TotalSteps: len(quiz.Steps()), Done: w.Done()}
	if step, ok := w.Step(); ok {
		progress.Step = &step
	} else {
		progress.Matches = matching.Match(w.Response(), s.catalog.All())
	}
	return progress, nil
}

func (s *service) Estimate(ctx context.Context, id string, teamSize int) (Estimate, error) {
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}
	v, err := s.catalog.Get(id)
	if err != nil {
		return Estimate{}, err
	}
	if !booking.ValidTeamSize(teamSize) {
		return Estimate{}, ErrInvalidTeamSize
	}
	return estimate(v, teamSize), nil
}

// BookingForm prefills the booking form from optional quiz answers and prices
// the prefilled team size.
func (s *service) BookingForm(ctx context.Context, id string, answers *quiz.Response) (BookingForm, error) {
	if err := ctx.Err(); err != nil {
		return BookingForm{}, err
	}
	v, err := s.catalog.Get(id)
	if err != nil {
		return BookingForm{}, err
	}
	form := booking.Prefill(answers)
	return BookingForm{
		Experience:      present(v),
		Form:            form,
		TeamSizeOptions: booking.TeamSizeOptions(),
		Estimate:        estimate(v, form.TeamSize),
	}, nil
}

func present(v catalog.Venue) Experience {
	return Experience{Venue: v, PriceLabel: catalog.FormatAUD(v.NightlyPrice) + "/night"}
}

func estimate(v catalog.Venue, teamSize int) Estimate {
	total := booking.EstimateCost(v, teamSize)
	return Estimate{
		ExperienceID: v.ID,
		TeamSize:     teamSize,
		Units:        total / v.NightlyPrice,
		Total:        total,
		TotalLabel:   catalog.FormatAUD(total),
	}
}

func describe(problems map[quiz.StepID]string) string {
	parts := make([]string, 0, len(problems))
	for id, msg := range problems {
		parts = append(parts, string(id)+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
