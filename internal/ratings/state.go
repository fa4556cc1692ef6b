package ratings

import (
	"sort"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// State is the full Rating State: every rated fighter's ten-dimension
// profile. It is an explicit value owned by a single replay invocation
// per run, passed by reference to whoever needs it, never a package-level
// singleton. Reads never mutate; decay-on-read happens on clones.
type State struct {
	fighters map[string]*models.FighterRatings
}

// NewState returns an empty Rating State.
func NewState() *State {
	return &State{fighters: make(map[string]*models.FighterRatings)}
}

// Lookup returns a fighter's ratings without creating them. A fighter
// with zero recorded bouts has no entry, which is what forces the
// evaluator's refusal path.
func (s *State) Lookup(fighterID string) (*models.FighterRatings, bool) {
	fr, ok := s.fighters[fighterID]
	return fr, ok
}

// GetOrCreate returns a fighter's ratings, lazily initializing every
// dimension at baseline on first involvement.
func (s *State) GetOrCreate(fighterID string) *models.FighterRatings {
	if fr, ok := s.fighters[fighterID]; ok {
		return fr
	}
	fr := models.NewFighterRatings(fighterID)
	s.fighters[fighterID] = fr
	return fr
}

// Set stores a fighter's ratings wholesale. Used when restoring a
// persisted snapshot.
func (s *State) Set(fr *models.FighterRatings) {
	s.fighters[fr.FighterID] = fr
}

// Len returns the number of rated fighters.
func (s *State) Len() int {
	return len(s.fighters)
}

// FighterIDs returns all rated fighter IDs in sorted order, so snapshot
// serialization is reproducible.
func (s *State) FighterIDs() []string {
	ids := make([]string, 0, len(s.fighters))
	for id := range s.fighters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns an immutable deep copy of the entire state.
func (s *State) Snapshot() map[string]*models.FighterRatings {
	out := make(map[string]*models.FighterRatings, len(s.fighters))
	for id, fr := range s.fighters {
		out[id] = fr.Clone()
	}
	return out
}
