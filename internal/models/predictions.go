package models

import "time"

// Factor is one named contribution to a prediction decision. The trace is
// part of the public result so downstream narrative and tracking tooling
// can explain every pick.
type Factor struct {
	Name      string  `json:"name"`
	Dimension string  `json:"dimension,omitempty"`
	Magnitude float64 `json:"magnitude"`
}

// DimensionDiff is one entry of the per-dimension differential vector
// (red minus blue).
type DimensionDiff struct {
	Dimension   Dimension `json:"dimension"`
	Red         float64   `json:"red"`
	Blue        float64   `json:"blue"`
	Diff        float64   `json:"diff"`
	Significant bool      `json:"significant"`
}

// StyleMatchup is the stylistic read on a pairing, surfaced for the
// narrative layer and used by the winner tiebreaker.
type StyleMatchup struct {
	StrikerVsGrappler string `json:"striker_vs_grappler,omitempty"` // "red_striker", "blue_striker" or empty
	PressureDynamic   string `json:"pressure_dynamic"`              // "red", "blue", "neutral"
	CardioFactor      string `json:"cardio_factor"`                 // "red", "blue", "even"
	ExperienceEdge    string `json:"experience_edge,omitempty"`     // "red", "blue" or empty
}

// MatchupContext carries the contextual signals of a scheduled bout.
type MatchupContext struct {
	ScheduledRounds int    `json:"scheduled_rounds"`
	TitleFight      bool   `json:"title_fight"`
	RedWeightClass  string `json:"red_weight_class,omitempty"`
	BlueWeightClass string `json:"blue_weight_class,omitempty"`
	RedNoticeDays   int    `json:"red_notice_days,omitempty"` // 0 = full camp
	BlueNoticeDays  int    `json:"blue_notice_days,omitempty"`
	Venue           string `json:"venue,omitempty"`
	HomeFighterID   string `json:"home_fighter_id,omitempty"`
}

// Matchup is the evaluator's output: everything the prediction engine
// needs, with no decision made yet.
type Matchup struct {
	RedID   string `json:"red_id"`
	BlueID  string `json:"blue_id"`
	Context MatchupContext `json:"context"`

	Diffs     []DimensionDiff `json:"diffs"`
	Composite float64         `json:"composite"` // weighted sum, positive favors red
	Style     StyleMatchup    `json:"style"`

	// Contextual signals
	ShortNoticeSide string  `json:"short_notice_side,omitempty"` // "red", "blue" or empty
	SizeDiff        float64 `json:"size_diff"`                   // positive favors red
	LocationBias    string  `json:"location_bias,omitempty"`     // flag only, no numeric shift

	RedChinFlags  int     `json:"red_chin_flags"`
	BlueChinFlags int     `json:"blue_chin_flags"`
	RedDeviation  float64 `json:"red_deviation"`
	BlueDeviation float64 `json:"blue_deviation"`
	RedBouts      int     `json:"red_bouts"`
	BlueBouts     int     `json:"blue_bouts"`

	Refused       bool   `json:"refused"`
	RefusalReason string `json:"refusal_reason,omitempty"`
}

// Prediction is the structured, explainable pick: the sole contract
// consumed by presentation and tracking collaborators.
type Prediction struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RedID  string `json:"red_id"`
	BlueID string `json:"blue_id"`

	WinnerID string `json:"winner_id,omitempty"`
	Method   Method `json:"method,omitempty"`
	Round    *int   `json:"round,omitempty"` // nil for Decision

	Diffs   []DimensionDiff `json:"diffs,omitempty"`
	Factors []Factor        `json:"factors,omitempty"`
	Style   StyleMatchup    `json:"style,omitempty"`

	CloseFight bool     `json:"close_fight"`
	XFactors   []string `json:"x_factors,omitempty"`

	Refused       bool   `json:"refused"`
	RefusalReason string `json:"refusal_reason,omitempty"`
}

// TrackedOutcome classifies a logged prediction once the bout result is known.
type TrackedOutcome string

const (
	OutcomePending   TrackedOutcome = "pending"
	OutcomeCorrect   TrackedOutcome = "correct"
	OutcomeIncorrect TrackedOutcome = "incorrect"
	OutcomeNoContest TrackedOutcome = "no_contest"
	OutcomeCancelled TrackedOutcome = "cancelled"
)

// TrackedPrediction is a prediction logged for later reconciliation
// against the confirmed result.
type TrackedPrediction struct {
	PredictionID    string         `json:"prediction_id"`
	BoutID          string         `json:"bout_id,omitempty"`
	RedID           string         `json:"red_id"`
	BlueID          string         `json:"blue_id"`
	PredictedWinner string         `json:"predicted_winner"`
	PredictedMethod Method         `json:"predicted_method"`
	PredictedRound  *int           `json:"predicted_round,omitempty"`
	LoggedAt        time.Time      `json:"logged_at"`
	Outcome         TrackedOutcome `json:"outcome"`
	ActualWinner    string         `json:"actual_winner,omitempty"`
	ActualMethod    Method         `json:"actual_method,omitempty"`
}
