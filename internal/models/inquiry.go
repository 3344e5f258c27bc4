package models

import "time"

// InquiryStatus tracks a lead through the sales follow-up.
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusConverted InquiryStatus = "converted"
	InquiryStatusLost      InquiryStatus = "lost"
)

// InquiryStatuses lists every status in board order.
var InquiryStatuses = []InquiryStatus{
	InquiryStatusPending,
	InquiryStatusContacted,
	InquiryStatusConverted,
	InquiryStatusLost,
}

// Valid reports whether s is one of the known statuses.
func (s InquiryStatus) Valid() bool {
	for _, known := range InquiryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Inquiry is a booking inquiry submitted from the booking form.
type Inquiry struct {
	ID              string        `json:"id"`
	WorkEmail       string        `json:"work_email"`
	CompanyName     string        `json:"company_name"`
	ContactName     string        `json:"contact_name"`
	Phone           string        `json:"phone,omitempty"`
	TeamSize        int           `json:"team_size"`
	PreferredDate   time.Time     `json:"preferred_date"`
	AlternateDate   *time.Time    `json:"alternate_date,omitempty"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	ExperienceID    string        `json:"experience_id"`
	ExperienceTitle string        `json:"experience_title"` // copied from the catalog at submission
	EstimatedCost   int           `json:"estimated_cost"`   // AUD
	Status          InquiryStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// InquiryFilter narrows the lead board listing.
type InquiryFilter struct {
	Statuses []InquiryStatus
	Limit    int
}

// InquirySummary counts leads per status.
type InquirySummary struct {
	Total    int                   `json:"total"`
	ByStatus map[InquiryStatus]int `json:"by_status"`
	Pipeline int                   `json:"pipeline_value"` // estimated cost of open leads
}
