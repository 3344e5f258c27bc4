package quiz

// StepID names a quiz step; it doubles as the answer's JSON field name.
type StepID string

const (
	StepTeamSize  StepID = "teamSize"
	StepEventType StepID = "eventType"
	StepBudget    StepID = "budget"
	StepLocation  StepID = "location"
	StepVibe      StepID = "vibe"
)

// Option is one selectable answer.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Step is a single quiz question.
type Step struct {
	ID       StepID   `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Has reports whether value is one of the step's options.
func (s Step) Has(value string) bool {
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

var steps = []Step{
	{
		ID:       StepTeamSize,
		Question: "How big is your team?",
		Options: []Option{
			{Value: string(TeamSmall), Label: "5-10 people", Description: "Small team, intimate setting"},
			{Value: string(TeamMedium), Label: "11-20 people", Description: "Medium team, versatile venues"},
			{Value: string(TeamLarge), Label: "21-50 people", Description: "Large team, spacious venues"},
			{Value: string(TeamHuge), Label: "50+ people", Description: "Corporate event, premium venues"},
		},
	},
	{
		ID:       StepEventType,
		Question: "What's the occasion?",
		Options: []Option{
			{Value: string(EventTeamBuilding), Label: "Team Building", Description: "Activities and bonding experiences"},
			{Value: string(EventCelebration), Label: "Celebration", Description: "Success party or milestone"},
			{Value: string(EventRetreat), Label: "Strategic Retreat", Description: "Planning and offsite meetings"},
			{Value: string(EventClient), Label: "Client Entertainment", Description: "Impress clients and partners"},
		},
	},
	{
		ID:       StepBudget,
		Question: "What's your budget per person?",
		Options: []Option{
			{Value: string(Budget100to200), Label: "AUD $100-200", Description: "Quality experiences, good value"},
			{Value: string(Budget200to400), Label: "AUD $200-400", Description: "Premium venues and activities"},
			{Value: string(Budget400to600), Label: "AUD $400-600", Description: "Luxury experiences"},
			{Value: string(Budget600Plus), Label: "AUD $600+", Description: "Ultra-premium, exclusive venues"},
		},
	},
	{
		ID:       StepLocation,
		Question: "Where would you like to go?",
		Options: []Option{
			{Value: string(LocationSydney), Label: "Sydney & Surrounds", Description: "Harbour, beaches, city venues"},
			{Value: string(LocationMelbourne), Label: "Melbourne & Region", Description: "Culture, wine country, city rooftops"},
			{Value: string(LocationAnywhere), Label: "Anywhere in Australia", Description: "Show me the best options"},
			{Value: string(LocationRemote), Label: "Remote-Accessible", Description: "Easy travel for distributed teams"},
		},
	},
	{
		ID:       StepVibe,
		Question: "What vibe are you going for?",
		Options: []Option{
			{Value: string(VibeRelaxed), Label: "Relaxed & Social", Description: "Casual atmosphere, good food & drinks"},
			{Value: string(VibeAdventurous), Label: "Adventurous", Description: "Activities, outdoor experiences"},
			{Value: string(VibeLuxurious), Label: "Luxurious", Description: "Premium service, impressive venues"},
			{Value: string(VibeProductive), Label: "Productive", Description: "Focus on work with beautiful setting"},
		},
	},
}

// Steps returns the quiz questions in the order they are asked.
func Steps() []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Options = append([]Option(nil), s.Options...)
		out[i] = s
	}
	return out
}

// Validate checks every answer in r against the step options. Blank answers
// are reported as missing.
func Validate(r Response) map[StepID]string {
	problems := make(map[StepID]string)
	for _, s := range steps {
		v := r.answer(s.ID)
		switch {
		case v == "":
			problems[s.ID] = "answer required"
		case !s.Has(v):
			problems[s.ID] = "unknown option " + v
		}
	}
	return problems
}

func (r Response) answer(id StepID) string {
	switch id {
	case StepTeamSize:
		return string(r.TeamSize)
	case StepEventType:
		return string(r.EventType)
	case StepBudget:
		return string(r.Budget)
	case StepLocation:
		return string(r.Location)
	case StepVibe:
		return string(r.Vibe)
	}
	return ""
}

func (r *Response) set(id StepID, value string) {
	switch id {
	case StepTeamSize:
		r.TeamSize = TeamSize(value)
	case StepEventType:
		r.EventType = EventType(value)
	case StepBudget:
		r.Budget = Budget(value)
	case StepLocation:
		r.Location = Location(value)
	case StepVibe:
		r.Vibe = Vibe(value)
	}
}
