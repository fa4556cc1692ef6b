package logic

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
	"github.com/lhgjose/ufc-prediction-fights/internal/predict"
	"github.com/lhgjose/ufc-prediction-fights/internal/store"
)

type stubRatings struct {
	byID map[string]*models.FighterRatings
}

func (s *stubRatings) Rebuild(ctx context.Context) (*models.ReplayReport, error) {
	return nil, nil
}

func (s *stubRatings) FighterRatings(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error) {
	if fr, ok := s.byID[fighterID]; ok {
		return fr, nil
	}
	return nil, ErrFighterUnrated
}

func (s *stubRatings) Rankings(ctx context.Context, limit int) ([]models.FighterRank, error) {
	return nil, nil
}

func (s *stubRatings) LastReplay() *models.ReplayReport { return nil }

type stubFighters struct {
	byID map[string]*models.Fighter
}

func (s *stubFighters) GetFighter(ctx context.Context, id string) (*models.Fighter, error) {
	if f, ok := s.byID[id]; ok {
		return f, nil
	}
	return nil, store.ErrNotFound
}

func ratedFighter(id string) *models.FighterRatings {
	fr := models.NewFighterRatings(id)
	fr.BoutCount = 5
	return fr
}

func newSizeAwareService() PredictionService {
	ratingsSvc := &stubRatings{byID: map[string]*models.FighterRatings{
		"big":   ratedFighter("big"),
		"small": ratedFighter("small"),
	}}
	fighters := &stubFighters{byID: map[string]*models.Fighter{
		"big":   {ID: "big", Name: "Big", Division: "Heavyweight"},
		"small": {ID: "small", Name: "Small", Division: "Flyweight"},
	}}
	return NewPredictionService(ratingsSvc, nil, nil, fighters, predict.DefaultParams(), zap.NewNop())
}

func TestContextFromRequestCarriesWeightClasses(t *testing.T) {
	body := `{
		"red_id": "a", "blue_id": "b", "scheduled_rounds": 3,
		"red_weight_class": "Heavyweight", "blue_weight_class": "Flyweight"
	}`
	var req models.PredictRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}

	mctx := contextFromRequest(&req)
	if mctx.RedWeightClass != "Heavyweight" {
		t.Errorf("RedWeightClass = %q, want Heavyweight", mctx.RedWeightClass)
	}
	if mctx.BlueWeightClass != "Flyweight" {
		t.Errorf("BlueWeightClass = %q, want Flyweight", mctx.BlueWeightClass)
	}
}

func TestPredictSizeSignalFromDivisions(t *testing.T) {
	svc := newSizeAwareService()

	// No classes on the request: the fighters' registered divisions
	// must still feed the size differential.
	pred, err := svc.Predict(context.Background(), &models.PredictRequest{
		RedID: "big", BlueID: "small",
	})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if pred.Refused {
		t.Fatalf("unexpected refusal: %s", pred.RefusalReason)
	}

	want := 7 * predict.DefaultParams().SizePerClass // Heavyweight is seven steps above Flyweight
	var got float64
	for _, f := range pred.Factors {
		if f.Name == "size differential" {
			got = f.Magnitude
		}
	}
	if got != want {
		t.Errorf("size differential factor = %v, want %v", got, want)
	}
	if pred.WinnerID != "big" {
		t.Errorf("WinnerID = %q, want big", pred.WinnerID)
	}
}

func TestCompareResolvesDivisions(t *testing.T) {
	svc := newSizeAwareService()

	m, err := svc.Compare(context.Background(), "big", "small")
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}

	if m.Context.RedWeightClass != "Heavyweight" || m.Context.BlueWeightClass != "Flyweight" {
		t.Errorf("context classes = %q vs %q, want Heavyweight vs Flyweight",
			m.Context.RedWeightClass, m.Context.BlueWeightClass)
	}
	if want := 7 * predict.DefaultParams().SizePerClass; m.SizeDiff != want {
		t.Errorf("SizeDiff = %v, want %v", m.SizeDiff, want)
	}
}
