package logic

import (
	"context"
	"strings"
	"testing"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

func TestFinishProfile(t *testing.T) {
	conn := &MockConn{}
	svc := NewFighterStatsService(conn)

	prof, err := svc.FinishProfile(context.Background(), "fighter-1")
	if err != nil {
		t.Fatalf("FinishProfile returned error: %v", err)
	}

	if prof.FighterID != "fighter-1" {
		t.Errorf("FighterID = %q, want fighter-1", prof.FighterID)
	}
	if prof.Wins != 6 {
		t.Errorf("Wins = %d, want 6", prof.Wins)
	}
	if prof.KOWins != 3 {
		t.Errorf("KOWins = %d, want 3", prof.KOWins)
	}
	if prof.SubWins != 1 {
		t.Errorf("SubWins = %d, want 1", prof.SubWins)
	}
	if prof.DecWins != 2 {
		t.Errorf("DecWins = %d, want 2", prof.DecWins)
	}
	if prof.KORounds[0] != 3 {
		t.Errorf("KORounds[0] = %d, want 3", prof.KORounds[0])
	}
	if prof.SubRounds[1] != 1 {
		t.Errorf("SubRounds[1] = %d, want 1", prof.SubRounds[1])
	}
	if got := prof.FinishRate(models.MethodKOTKO); got != 0.5 {
		t.Errorf("FinishRate(KO) = %v, want 0.5", got)
	}
	if conn.QueryCalls != 1 {
		t.Errorf("QueryCalls = %d, want 1", conn.QueryCalls)
	}
}

// The warehouse tables are append-only; every read must collapse to the
// latest version per bout before aggregating, or re-ingested corrections
// double-count and a changed winner leaves both rows visible.
func TestWarehouseReadsDedupePerBout(t *testing.T) {
	conn := &MockConn{}
	svc := NewFighterStatsService(conn)

	if _, err := svc.FinishProfile(context.Background(), "fighter-1"); err != nil {
		t.Fatalf("FinishProfile returned error: %v", err)
	}
	if _, err := svc.CareerStats(context.Background(), "fighter-1"); err != nil {
		t.Fatalf("CareerStats returned error: %v", err)
	}

	queries := conn.allQueries()
	if len(queries) != 3 {
		t.Fatalf("recorded %d queries, want 3", len(queries))
	}
	for i, q := range queries {
		if !strings.Contains(q, "argMax(") {
			t.Errorf("query %d aggregates without version resolution:\n%s", i, q)
		}
		if !strings.Contains(q, "GROUP BY bout_id") {
			t.Errorf("query %d does not dedupe per bout:\n%s", i, q)
		}
	}
}

func TestCareerStats(t *testing.T) {
	conn := &MockConn{}
	svc := NewFighterStatsService(conn)

	stats, err := svc.CareerStats(context.Background(), "fighter-1")
	if err != nil {
		t.Fatalf("CareerStats returned error: %v", err)
	}

	if stats.Bouts != 10 {
		t.Errorf("Bouts = %d, want 10", stats.Bouts)
	}
	if stats.SigStrikesLanded != 400 {
		t.Errorf("SigStrikesLanded = %d, want 400", stats.SigStrikesLanded)
	}
	if stats.SigStrikesAbsorbed != 350 {
		t.Errorf("SigStrikesAbsorbed = %d, want 350", stats.SigStrikesAbsorbed)
	}
	if stats.StrikeAccuracy != 0.5 {
		t.Errorf("StrikeAccuracy = %v, want 0.5", stats.StrikeAccuracy)
	}
	if stats.TakedownAccuracy != 0.4 {
		t.Errorf("TakedownAccuracy = %v, want 0.4", stats.TakedownAccuracy)
	}
	if stats.ControlSeconds != 600 {
		t.Errorf("ControlSeconds = %d, want 600", stats.ControlSeconds)
	}
	if stats.Knockdowns != 7 {
		t.Errorf("Knockdowns = %d, want 7", stats.Knockdowns)
	}
	// One aggregate query per side of the join
	if got := conn.queryRowCount(); got != 2 {
		t.Errorf("QueryRowCalls = %d, want 2", got)
	}
}
