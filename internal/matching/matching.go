// Package matching turns quiz answers into a short list of recommended venues.
package matching

import (
	"strconv"
	"strings"

	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/quiz"
)

const (
	// MinScore is the score a venue needs to be recommended.
	MinScore = 3
	// MaxResults caps the number of recommendations.
	MaxResults = 3
	// occupancy is the share of capacity assumed to be filled when pricing per head.
	occupancy = 0.7
)

// Result is a recommended venue. Results keep catalog order, so the entry
// labelled best match is the first qualifying venue, not necessarily the one
// with the highest score.
type Result struct {
	Venue     catalog.Venue `json:"experience"`
	Score     int           `json:"score"`
	Rank      int           `json:"rank"`
	BestMatch bool          `json:"best_match"`
	Label     string        `json:"label"`
}

// PerPerson estimates the nightly cost per head at typical occupancy.
func PerPerson(v catalog.Venue) float64 {
	return float64(v.NightlyPrice) / (float64(v.MaxGuests) * occupancy)
}

// Score adds up how well a venue fits the answers.
func Score(r quiz.Response, v catalog.Venue) int {
	score := 0

	if r.TeamSize.MinHeadcount() <= v.MaxGuests {
		score += 2
	}

	perPerson := PerPerson(v)
	lower, upper, open := r.Budget.Bounds()
	if (!open && perPerson <= float64(upper)) || (open && perPerson >= float64(lower)) {
		score += 2
	}

	switch r.Location {
	case quiz.LocationSydney:
		if strings.Contains(v.Location, "NSW") {
			score += 2
		}
	case quiz.LocationMelbourne:
		if strings.Contains(v.Location, "VIC") {
			score += 2
		}
	case quiz.LocationAnywhere:
		score++
	}

	if r.EventType == quiz.EventCelebration && v.HasAmenityContaining("Bar", "Catering") {
		score++
	}
	if r.Vibe == quiz.VibeLuxurious && (v.NightlyPrice > 1000 || strings.Contains(v.Title, "Executive")) {
		score++
	}

	return score
}

// Match scores every venue and returns the first MaxResults that reach
// MinScore, in the order given. An empty result is valid.
func Match(r quiz.Response, venues []catalog.Venue) []Result {
	results := make([]Result, 0, MaxResults)
	for _, v := range venues {
		if len(results) == MaxResults {
			break
		}
		score := Score(r, v)
		if score < MinScore {
			continue
		}
		rank := len(results) + 1
		results = append(results, Result{
			Venue:     v,
			Score:     score,
			Rank:      rank,
			BestMatch: rank == 1,
			Label:     label(rank),
		})
	}
	return results
}

func label(rank int) string {
	if rank == 1 {
		return "Top Pick"
	}
	return "Option " + strconv.Itoa(rank)
}
