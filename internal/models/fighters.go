package models

import "time"

// Fighter is a normalized competitor profile as delivered by the scraper
// collaborator. The rating engine never mutates these records.
type Fighter struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Nickname  string     `json:"nickname,omitempty"`
	Gender    string     `json:"gender,omitempty"` // "male" or "female"
	Division  string     `json:"division,omitempty"`
	Stance    string     `json:"stance,omitempty"` // Orthodox, Southpaw, Switch
	HeightIn  int        `json:"height_inches,omitempty"`
	ReachIn   int        `json:"reach_inches,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	DebutDate *time.Time `json:"debut_date,omitempty"`
	Wins      int        `json:"wins"`
	Losses    int        `json:"losses"`
	Draws     int        `json:"draws"`
	NoContest int        `json:"no_contests"`
	BoutIDs   []string   `json:"bout_ids,omitempty"` // chronological
}

// Age returns the fighter's age in years at the given date, or 0 when the
// birth date is unknown.
func (f *Fighter) Age(at time.Time) float64 {
	if f.BirthDate == nil {
		return 0
	}
	return at.Sub(*f.BirthDate).Hours() / 24 / 365.25
}
