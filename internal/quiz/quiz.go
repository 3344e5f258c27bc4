// Package quiz defines the five-step venue quiz: its answer enums, the step
// definitions shown to clients and the wizard that collects answers in order.
package quiz

import (
	"strconv"
	"strings"
)

// TeamSize is a coarse headcount bracket such as "11-20" or "50+".
type TeamSize string

const (
	TeamSmall  TeamSize = "5-10"
	TeamMedium TeamSize = "11-20"
	TeamLarge  TeamSize = "21-50"
	TeamHuge   TeamSize = "50+"
)

// EventType is the occasion the team is booking for.
type EventType string

const (
	EventTeamBuilding EventType = "team-building"
	EventCelebration  EventType = "celebration"
	EventRetreat      EventType = "retreat"
	EventClient       EventType = "client"
)

// Budget is an AUD per-person bracket.
type Budget string

const (
	Budget100to200 Budget = "100-200"
	Budget200to400 Budget = "200-400"
	Budget400to600 Budget = "400-600"
	Budget600Plus  Budget = "600+"
)

// Location is the preferred region.
type Location string

const (
	LocationSydney    Location = "sydney"
	LocationMelbourne Location = "melbourne"
	LocationAnywhere  Location = "anywhere"
	LocationRemote    Location = "remote"
)

// Vibe is the atmosphere the team is after.
type Vibe string

const (
	VibeRelaxed     Vibe = "relaxed"
	VibeAdventurous Vibe = "adventurous"
	VibeLuxurious   Vibe = "luxurious"
	VibeProductive  Vibe = "productive"
)

// Response holds the answers to every quiz step.
type Response struct {
	TeamSize  TeamSize  `json:"teamSize"`
	EventType EventType `json:"eventType"`
	Budget    Budget    `json:"budget"`
	Location  Location  `json:"location"`
	Vibe      Vibe      `json:"vibe"`
}

// Complete reports whether all five answers are set.
func (r Response) Complete() bool {
	return r.TeamSize != "" && r.EventType != "" && r.Budget != "" && r.Location != "" && r.Vibe != ""
}

// MinHeadcount returns the lower bound of the bracket ("50+" yields 50).
func (t TeamSize) MinHeadcount() int {
	n, _ := leadingInt(string(t))
	return n
}

// Bounds returns the bracket limits in AUD per person. open is true for the
// "600+" bracket, which has no upper limit. An unset budget has no bounds.
func (b Budget) Bounds() (lower, upper int, open bool) {
	lo, hi, ranged := strings.Cut(string(b), "-")
	if !ranged {
		n, ok := leadingInt(lo)
		return n, 0, ok
	}
	lower, _ = strconv.Atoi(lo)
	upper, _ = strconv.Atoi(hi)
	return lower, upper, false
}

// leadingInt parses the digits at the start of s.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
