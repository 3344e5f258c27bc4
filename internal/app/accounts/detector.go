package accounts

import (
	"strings"

	"github.com/overnightmvp/7-day/internal/models"
)

// Detector classifies signups by email domain. Addresses on a personal
// webmail domain are treated as employees joining an existing company;
// anything else is treated as a company signing up. A business that uses a
// webmail address is misclassified, which is a known limit of the heuristic.
type Detector struct {
	personal map[string]bool
}

// NewDetector builds a Detector for the given personal webmail domains.
func NewDetector(personalDomains []string) *Detector {
	d := &Detector{personal: make(map[string]bool, len(personalDomains))}
	for _, domain := range personalDomains {
		d.personal[strings.ToLower(strings.TrimSpace(domain))] = true
	}
	return d
}

// DetectUserType returns employee for personal webmail addresses and
// company otherwise.
func (d *Detector) DetectUserType(email string) models.UserType {
	if d.IsPersonal(email) {
		return models.UserTypeEmployee
	}
	return models.UserTypeCompany
}

// IsPersonal reports whether email is on a personal webmail domain.
func (d *Detector) IsPersonal(email string) bool {
	return d.personal[strings.ToLower(EmailDomain(email))]
}

// EmailDomain returns the part of email after the first '@', up to any
// further '@'. It is empty when email has no '@'.
func EmailDomain(email string) string {
	_, rest, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	domain, _, _ := strings.Cut(rest, "@")
	return domain
}
