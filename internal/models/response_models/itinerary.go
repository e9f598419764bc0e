package response_models

// Activity is one stop of a day. Cost is the free-text estimate from the
// model; UserCost is the number the traveller typed in, nil until then.
type Activity struct {
	Name        string   `json:"name"`
	Hours       string   `json:"hours"`
	Cost        string   `json:"cost"`
	Description string   `json:"description,omitempty"`
	UserCost    *float64 `json:"user_cost,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

// Itinerary is ordered by day as returned by the model. Values are treated as
// immutable: edits build a new Itinerary and share the untouched days.
type Itinerary []DayPlan

type BudgetSummary struct {
	TotalCost        float64 `json:"total_cost"`
	AverageDailyCost float64 `json:"average_daily_cost"`
	Days             int     `json:"days"`
	TotalDisplay     string  `json:"total_display"`
	AverageDisplay   string  `json:"average_display"`
}

type GeneratedItinerary struct {
	Itinerary Itinerary     `json:"itinerary"`
	Budget    BudgetSummary `json:"budget"`
	Sources   []string      `json:"sources,omitempty"`
}

// PlannerView is everything the result page needs for one session.
type PlannerView struct {
	SessionID string         `json:"session_id"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
	Itinerary Itinerary      `json:"itinerary"`
	Budget    *BudgetSummary `json:"budget,omitempty"`
	Sources   []string       `json:"sources,omitempty"`
	Request   *TravelEcho    `json:"request,omitempty"`
}

type TravelEcho struct {
	Destination string `json:"destination"`
	Duration    int    `json:"duration"`
	Interests   string `json:"interests"`
}

type GenerationLogEntry struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Duration    int    `json:"duration"`
	Interests   string `json:"interests"`
	Provider    string `json:"provider"`
	Outcome     string `json:"outcome"`
	Error       string `json:"error,omitempty"`
	DayCount    int    `json:"day_count"`
	LatencyMs   int64  `json:"latency_ms"`
	CreatedAt   int64  `json:"created_at"`
}
