// Package catalog holds the fixed list of bookable team experiences.
package catalog

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrVenueNotFound is returned when an id does not match any listing.
var ErrVenueNotFound = errors.New("experience not found")

// Venue is a bookable corporate-event location.
type Venue struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	NightlyPrice int      `json:"price_per_night"` // AUD
	MaxGuests    int      `json:"max_guests"`
	ImageURL     string   `json:"image_url"`
	Amenities    []string `json:"amenities"`
}

// HasAmenityContaining reports whether any amenity contains one of the fragments.
func (v Venue) HasAmenityContaining(fragments ...string) bool {
	for _, amenity := range v.Amenities {
		for _, f := range fragments {
			if strings.Contains(amenity, f) {
				return true
			}
		}
	}
	return false
}

// Catalog is an immutable, ordered set of venues. It is safe for concurrent use.
type Catalog struct {
	venues []Venue
	byID   map[string]int
}

// New builds a Catalog from the given venues, keeping their order.
func New(venues []Venue) *Catalog {
	c := &Catalog{
		venues: make([]Venue, len(venues)),
		byID:   make(map[string]int, len(venues)),
	}
	for i, v := range venues {
		v.Amenities = append([]string(nil), v.Amenities...)
		c.venues[i] = v
		c.byID[v.ID] = i
	}
	return c
}

// Default returns the catalog of Australian team experiences.
func Default() *Catalog {
	return New(australianExperiences)
}

// All returns a copy of every venue in catalog order.
func (c *Catalog) All() []Venue {
	out := make([]Venue, len(c.venues))
	for i, v := range c.venues {
		v.Amenities = append([]string(nil), v.Amenities...)
		out[i] = v
	}
	return out
}

// Get looks up a venue by id.
func (c *Catalog) Get(id string) (Venue, error) {
	i, ok := c.byID[id]
	if !ok {
		return Venue{}, ErrVenueNotFound
	}
	v := c.venues[i]
	v.Amenities = append([]string(nil), v.Amenities...)
	return v, nil
}

// Len returns the number of venues.
func (c *Catalog) Len() int {
	return len(c.venues)
}

var audPrinter = message.NewPrinter(language.MustParse("en-AU"))

// FormatAUD renders a whole-dollar amount, e.g. 1360 -> "$1,360".
func FormatAUD(amount int) string {
	if amount < 0 {
		return "-" + audPrinter.Sprintf("$%d", -amount)
	}
	return audPrinter.Sprintf("$%d", amount)
}

var australianExperiences = []Venue{
	{
		ID:           "blue-mountains-retreat",
		Title:        "Blue Mountains Corporate Retreat",
		Description:  "Luxury mountain lodge designed for team retreats and strategic planning. Stunning bushland views just 90 minutes from Sydney.",
		Location:     "Blue Mountains, NSW",
		NightlyPrice: 680,
		MaxGuests:    12,
		ImageURL:     "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800",
		Amenities:    []string{"Conference Space", "WiFi", "Spa Facilities", "Team Kitchen", "Presentation Setup"},
	},
	{
		ID:           "sydney-harbour-charter",
		Title:        "Sydney Harbour Corporate Charter",
		Description:  "Premium yacht charter with skipper for team celebrations and client entertainment. Cruise past Opera House and Harbour Bridge.",
		Location:     "Sydney Harbour, NSW",
		NightlyPrice: 4200,
		MaxGuests:    20,
		ImageURL:     "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=800",
		Amenities:    []string{"Licensed Skipper", "Premium Catering", "AV Equipment", "Harbour Views"},
	},
	{
		ID:           "hunter-valley-estate",
		Title:        "Hunter Valley Wine Estate",
		Description:  "Corporate vineyard retreat with structured team building, wine tastings, and strategy sessions in Australia's premier wine region.",
		Location:     "Hunter Valley, NSW",
		NightlyPrice: 980,
		MaxGuests:    16,
		ImageURL:     "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
		Amenities:    []string{"Team Building Activities", "Wine Tastings", "Corporate BBQ", "Conference Facilities"},
	},
	{
		ID:           "bondi-beach-house",
		Title:        "Bondi Beach Executive Retreat",
		Description:  "Oceanfront executive retreat for leadership teams and board meetings. Iconic Bondi Beach location with premium facilities.",
		Location:     "Bondi Beach, NSW",
		NightlyPrice: 1800,
		MaxGuests:    14,
		ImageURL:     "https://images.unsplash.com/photo-1520637836862-4d197d17c11a?w=800",
		Amenities:    []string{"Private Beach Access", "Executive Dining", "Ocean Terrace", "Surf Lessons", "Concierge Service"},
	},
	{
		ID:           "melbourne-rooftop-venue",
		Title:        "Melbourne CBD Rooftop Venue",
		Description:  "Premium rooftop venue in Melbourne's CBD perfect for team events and client entertainment. Stunning city skyline views.",
		Location:     "Melbourne CBD, VIC",
		NightlyPrice: 1200,
		MaxGuests:    18,
		ImageURL:     "https://images.unsplash.com/photo-1551524164-6cf3f6ba4931?w=800",
		Amenities:    []string{"City Views", "Event Space", "Premium Bar", "Corporate Catering", "AV Setup"},
	},
	{
		ID:           "barossa-valley-winery",
		Title:        "Barossa Valley Winery Experience",
		Description:  "Exclusive winery experience in Australia's most famous wine region. Perfect for team celebrations and corporate hospitality.",
		Location:     "Barossa Valley, SA",
		NightlyPrice: 750,
		MaxGuests:    24,
		ImageURL:     "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
		Amenities:    []string{"Wine Tastings", "Vineyard Tours", "Private Dining", "Team Activities", "Transport Included"},
	},
}
