package booking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/quiz"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func fixedValidator() *Validator {
	return &Validator{Now: func() time.Time { return fixedNow }}
}

func validForm() Form {
	return Form{
		WorkEmail:     "sam@acme.com.au",
		CompanyName:   "Acme",
		ContactName:   "Sam",
		TeamSize:      20,
		PreferredDate: fixedNow.Add(LeadTime).Format(time.RFC3339),
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	assert.Empty(t, fixedValidator().Validate(validForm()))
}

func TestValidateLeadTimeBoundary(t *testing.T) {
	v := fixedValidator()

	f := validForm()
	f.PreferredDate = fixedNow.Add(LeadTime).Format(time.RFC3339)
	assert.Empty(t, v.Validate(f))

	f.PreferredDate = fixedNow.Add(LeadTime - time.Second).Format(time.RFC3339)
	errs := v.Validate(f)
	require.Len(t, errs, 1)
	assert.Equal(t, "Please choose a date at least 2 weeks ahead.", errs[FieldPreferredDate])
}

func TestValidateDateOnlyIsMidnightUTC(t *testing.T) {
	v := fixedValidator()
	f := validForm()

	// 14 days later at 00:00 is earlier than now+336h at 09:30.
	f.PreferredDate = "2026-03-16"
	assert.Contains(t, v.Validate(f), FieldPreferredDate)

	f.PreferredDate = "2026-03-17"
	assert.Empty(t, v.Validate(f))
}

func TestValidateMessages(t *testing.T) {
	errs := fixedValidator().Validate(Form{})
	assert.Equal(t, Errors{
		FieldWorkEmail:     "We'll need your work email to send venue details",
		FieldCompanyName:   "Company name helps us prepare the perfect experience",
		FieldContactName:   "Who should we contact about this booking?",
		FieldTeamSize:      "Please choose a team size between 1 and 1000",
		FieldPreferredDate: "When would you like to have your team event?",
	}, errs)
}

func TestValidateEmailShape(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"sam@acme.com", true},
		{"sam.lee+events@corp.acme.com.au", true},
		{"sam@acme", false},
		{"sam acme@x.com", false},
		{"@acme.com", false},
		{"sam@@acme.com", false},
		{"sam\u00a0x@acme.com", false},
		{"sam@acme\u2003corp.com", false},
		{"\ufeffsam@acme.com", false},
		{"zoë@acme.com.au", true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.email, func(t *testing.T) {
			f := validForm()
			f.WorkEmail = tc.email
			errs := fixedValidator().Validate(f)
			if tc.ok {
				assert.NotContains(t, errs, FieldWorkEmail)
				return
			}
			assert.Equal(t, "Please enter a valid email address", errs[FieldWorkEmail])
		})
	}
}

func TestValidateUnparseableDates(t *testing.T) {
	f := validForm()
	f.PreferredDate = "next tuesday"
	f.AlternateDate = "soon"
	errs := fixedValidator().Validate(f)
	assert.Equal(t, "Please choose a date at least 2 weeks ahead.", errs[FieldPreferredDate])
	assert.Equal(t, "Please enter a valid date", errs[FieldAlternateDate])
}

func TestValidateTeamSizeRange(t *testing.T) {
	v := fixedValidator()
	for _, size := range []int{1, 50, MaxTeamSize} {
		f := validForm()
		f.TeamSize = size
		assert.Empty(t, v.Validate(f), "size %d", size)
	}
	for _, size := range []int{0, -3, MaxTeamSize + 1, math.MaxInt32 + 1, math.MaxInt} {
		f := validForm()
		f.TeamSize = size
		errs := v.Validate(f)
		require.Len(t, errs, 1, "size %d", size)
		assert.Equal(t, "Please choose a team size between 1 and 1000", errs[FieldTeamSize])
	}
}

func TestErrorsString(t *testing.T) {
	errs := Errors{FieldContactName: "b", FieldCompanyName: "a"}
	assert.Equal(t, "companyName: a; contactName: b", errs.Error())
}

func TestEstimateCost(t *testing.T) {
	v := catalog.Venue{NightlyPrice: 680, MaxGuests: 12}
	assert.Equal(t, 1360, EstimateCost(v, 20))
	assert.Equal(t, 680, EstimateCost(v, 1))
	assert.Equal(t, 680, EstimateCost(v, 12))
	assert.Equal(t, 2040, EstimateCost(v, 25))
}

func TestEstimateCostHugeTeamsSaturate(t *testing.T) {
	v := catalog.Venue{NightlyPrice: 680, MaxGuests: 12}
	assert.Equal(t, math.MaxInt, EstimateCost(v, math.MaxInt))
	assert.GreaterOrEqual(t, EstimateCost(v, math.MaxInt), EstimateCost(v, math.MaxInt-1))
	assert.Greater(t, EstimateCost(v, math.MaxInt), EstimateCost(v, 12))

	// The largest bookable team must fit the INTEGER estimate column.
	for _, venue := range catalog.Default().All() {
		assert.LessOrEqual(t, EstimateCost(venue, MaxTeamSize), math.MaxInt32, venue.ID)
	}
}

func TestEstimateCostProperties(t *testing.T) {
	for _, v := range catalog.Default().All() {
		assert.Equal(t, v.NightlyPrice, EstimateCost(v, v.MaxGuests), v.ID)
		prev := 0
		for size := 1; size <= 200; size++ {
			cost := EstimateCost(v, size)
			require.GreaterOrEqual(t, cost, prev, "%s at %d", v.ID, size)
			prev = cost
		}
	}
}

func TestPrefill(t *testing.T) {
	assert.Equal(t, Form{TeamSize: DefaultTeamSize}, Prefill(nil))

	f := Prefill(&quiz.Response{
		TeamSize:  quiz.TeamLarge,
		EventType: quiz.EventCelebration,
		Budget:    quiz.Budget400to600,
		Vibe:      quiz.VibeRelaxed,
	})
	assert.Equal(t, 21, f.TeamSize)
	assert.Equal(t, "Event type: celebration, Budget range: 400-600, Preferred vibe: relaxed", f.SpecialRequests)
}

func TestTeamSizeOptions(t *testing.T) {
	opts := TeamSizeOptions()
	assert.Equal(t, []int{5, 8, 12, 15, 20, 25, 30, 40, 50}, opts)
	opts[0] = 99
	assert.Equal(t, 5, TeamSizeOptions()[0])
}
