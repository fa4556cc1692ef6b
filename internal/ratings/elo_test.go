package ratings

import (
	"math"
	"testing"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

func TestExpectedScore(t *testing.T) {
	if got := ExpectedScore(1500, 1500); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("equal ratings expectation = %v, want 0.5", got)
	}

	// Expectations for both sides always sum to 1
	a, b := ExpectedScore(1700, 1450), ExpectedScore(1450, 1700)
	if math.Abs(a+b-1.0) > 1e-9 {
		t.Errorf("expectations sum to %v, want 1", a+b)
	}
	if a <= 0.5 {
		t.Errorf("higher-rated side expectation = %v, want above 0.5", a)
	}

	// 400 point gap is the canonical 10:1 expectation
	if got := ExpectedScore(1900, 1500); math.Abs(got-10.0/11.0) > 1e-9 {
		t.Errorf("400 point gap expectation = %v, want %v", got, 10.0/11.0)
	}
}

func TestDynamicK(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name   string
		bouts  int
		rating float64
		want   float64
	}{
		{"provisional", 3, 1500, p.KBase * p.ProvisionalMult},
		{"provisional high rated", 5, 1900, p.KBase * p.ProvisionalMult},
		{"established", 15, 1600, p.KBase},
		{"established elite", 15, 1850, p.KBase * p.HighRatingMult},
		{"at threshold", 15, p.HighRatingThreshold, p.KBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DynamicK(p, tt.bouts, tt.rating); got != tt.want {
				t.Errorf("DynamicK(%d, %.0f) = %v, want %v", tt.bouts, tt.rating, got, tt.want)
			}
		})
	}
}

func TestFinishMultiplier(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name      string
		method    models.Method
		round     int
		scheduled int
		want      float64
	}{
		{"decision", models.MethodDecision, 3, 3, 1.0},
		{"other", models.MethodOther, 2, 3, 1.0},
		{"first round KO of three", models.MethodKOTKO, 1, 3, p.EarlyFinishMult},
		{"second round KO of three", models.MethodKOTKO, 2, 3, p.FinishMult},
		{"second round sub of five", models.MethodSubmission, 2, 5, p.EarlyFinishMult},
		{"fourth round KO of five", models.MethodKOTKO, 4, 5, p.FinishMult},
		{"KO with unknown round", models.MethodKOTKO, 0, 3, p.FinishMult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinishMultiplier(p, tt.method, tt.round, tt.scheduled); got != tt.want {
				t.Errorf("FinishMultiplier(%s, r%d/%d) = %v, want %v", tt.method, tt.round, tt.scheduled, got, tt.want)
			}
		})
	}
}

func TestWinProbability(t *testing.T) {
	if got := WinProbability(0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("WinProbability(0) = %v, want 0.5", got)
	}
	if got := WinProbability(200); got <= 0.5 {
		t.Errorf("WinProbability(200) = %v, want above 0.5", got)
	}
	p, q := WinProbability(150), WinProbability(-150)
	if math.Abs(p+q-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1", p+q)
	}
}

func TestShrinkDeviationFloor(t *testing.T) {
	p := DefaultParams()

	if got := shrinkDeviation(p, 200); got != 200*p.DeviationShrink {
		t.Errorf("shrinkDeviation(200) = %v, want %v", got, 200*p.DeviationShrink)
	}
	if got := shrinkDeviation(p, models.MinDeviation); got != models.MinDeviation {
		t.Errorf("shrinkDeviation at floor = %v, want %v", got, models.MinDeviation)
	}
}
