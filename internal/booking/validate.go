package booking

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// LeadTime is the minimum gap between submitting and the preferred date.
const LeadTime = 14 * 24 * time.Hour

// Field keys used in Errors.
const (
	FieldWorkEmail     = "workEmail"
	FieldCompanyName   = "companyName"
	FieldContactName   = "contactName"
	FieldTeamSize      = "teamSize"
	FieldPreferredDate = "preferredDate"
	FieldAlternateDate = "alternateDate"
)

const (
	msgEmailRequired   = "We'll need your work email to send venue details"
	msgEmailInvalid    = "Please enter a valid email address"
	msgCompanyRequired = "Company name helps us prepare the perfect experience"
	msgContactRequired = "Who should we contact about this booking?"
	msgDateRequired    = "When would you like to have your team event?"
	msgDateTooSoon     = "Please choose a date at least 2 weeks ahead."
	msgDateInvalid     = "Please enter a valid date"
)

var msgTeamSizeInvalid = fmt.Sprintf("Please choose a team size between 1 and %d", MaxTeamSize)

// emailPattern treats Unicode spaces and the BOM as whitespace too.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

// ValidEmail reports whether s has the basic shape of an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Errors maps form fields to user-facing messages.
type Errors map[string]string

// Error joins the messages in field order so Errors can be returned as an error.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return strings.Join(parts, "; ")
}

// Validator checks booking forms against the current time.
type Validator struct {
	Now func() time.Time
}

// NewValidator returns a Validator using the wall clock.
func NewValidator() *Validator {
	return &Validator{Now: time.Now}
}

// Validate runs every rule and collects all failures. The result is empty
// when the form can be submitted.
func (v *Validator) Validate(f Form) Errors {
	errs := make(Errors)

	switch {
	case f.WorkEmail == "":
		errs[FieldWorkEmail] = msgEmailRequired
	case !ValidEmail(f.WorkEmail):
		errs[FieldWorkEmail] = msgEmailInvalid
	}

	if f.CompanyName == "" {
		errs[FieldCompanyName] = msgCompanyRequired
	}
	if f.ContactName == "" {
		errs[FieldContactName] = msgContactRequired
	}

	if !ValidTeamSize(f.TeamSize) {
		errs[FieldTeamSize] = msgTeamSizeInvalid
	}

	if f.PreferredDate == "" {
		errs[FieldPreferredDate] = msgDateRequired
	} else if !v.farEnoughAhead(f.PreferredDate) {
		errs[FieldPreferredDate] = msgDateTooSoon
	}

	if f.AlternateDate != "" {
		if _, err := ParseDate(f.AlternateDate); err != nil {
			errs[FieldAlternateDate] = msgDateInvalid
		}
	}

	return errs
}

// farEnoughAhead compares against the current instant plus LeadTime, not
// against a calendar day.
func (v *Validator) farEnoughAhead(value string) bool {
	date, err := ParseDate(value)
	if err != nil {
		return false
	}
	return !date.Before(v.now().Add(LeadTime))
}

func (v *Validator) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}
