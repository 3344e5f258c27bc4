// Package booking covers the inquiry form: prefill from quiz answers,
// validation and the cost estimate shown before submitting.
package booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/quiz"
)

// DefaultTeamSize is preselected when no quiz answers are available.
const DefaultTeamSize = 8

// MaxTeamSize is the largest headcount a single inquiry may carry. Bigger
// groups are quoted by hand.
const MaxTeamSize = 1000

// dateLayout is the date-only format sent by date pickers.
const dateLayout = "2006-01-02"

var teamSizeOptions = []int{5, 8, 12, 15, 20, 25, 30, 40, 50}

// TeamSizeOptions lists the headcounts offered by the team-size selector.
func TeamSizeOptions() []int {
	return append([]int(nil), teamSizeOptions...)
}

// Form is the booking inquiry as entered by a prospective customer.
type Form struct {
	WorkEmail       string `json:"workEmail"`
	CompanyName     string `json:"companyName"`
	ContactName     string `json:"contactName"`
	Phone           string `json:"phone"`
	TeamSize        int    `json:"teamSize"`
	PreferredDate   string `json:"preferredDate"`
	AlternateDate   string `json:"alternateDate"`
	SpecialRequests string `json:"specialRequests"`
}

// Prefill builds the initial form. With quiz answers the team size starts at
// the bracket's lower bound and the answers are summarised in the special
// requests.
func Prefill(r *quiz.Response) Form {
	f := Form{TeamSize: DefaultTeamSize}
	if r == nil {
		return f
	}
	if n := r.TeamSize.MinHeadcount(); n > 0 {
		f.TeamSize = n
	}
	f.SpecialRequests = fmt.Sprintf("Event type: %s, Budget range: %s, Preferred vibe: %s", r.EventType, r.Budget, r.Vibe)
	return f
}

// ValidTeamSize reports whether n is a bookable headcount.
func ValidTeamSize(n int) bool {
	return n >= 1 && n <= MaxTeamSize
}

// EstimateCost is the price of enough venue-nights to fit the whole team:
// ceil(teamSize / maxGuests) * nightlyPrice. Callers should check the size
// with ValidTeamSize; totals that do not fit an int saturate at math.MaxInt.
func EstimateCost(v catalog.Venue, teamSize int) int {
	units := teamSize / v.MaxGuests
	if teamSize%v.MaxGuests != 0 {
		units++
	}
	if units > math.MaxInt/v.NightlyPrice {
		return math.MaxInt
	}
	return units * v.NightlyPrice
}

// ParseDate accepts a date-only value (read as midnight UTC) or an RFC 3339
// timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}
