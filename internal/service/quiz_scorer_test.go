package service

import (
	"errors"
	"math"
	"testing"

	"career-compass/internal/domain"
)

func developerGuide(t *testing.T) ScoringGuide {
	t.Helper()
	guide, err := NewScoringGuide("software-developer", domain.QuizScoringGuide{
		domain.QuizTraitTechnical:       {Min: -10, Max: 55, Weight: 0.20},
		domain.QuizTraitPressure:        {Min: -20, Max: 30, Weight: 0.15},
		domain.QuizTraitCollaboration:   {Min: -5, Max: 45, Weight: 0.15},
		domain.QuizTraitCreativity:      {Min: -5, Max: 30, Weight: 0.15},
		domain.QuizTraitIndependence:    {Min: -10, Max: 35, Weight: 0.15},
		domain.QuizTraitWorkLifeBalance: {Min: -10, Max: 40, Weight: 0.20},
	}, []domain.ResultBand{
		{Key: domain.BandLow, Min: 0, Title: "Low"},
		{Key: domain.BandHigh, Min: 70, Title: "High"},
		{Key: domain.BandMedium, Min: 45, Title: "Medium"},
	})
	if err != nil {
		t.Fatalf("new scoring guide: %v", err)
	}
	return guide
}

func TestNormalizeTrait_TechnicalContribution(t *testing.T) {
	g := domain.TraitGuide{Min: -10, Max: 55, Weight: 0.20}
	n := normalizeTrait(44, g)
	if math.Abs(n-54.0/65.0) > 1e-9 {
		t.Fatalf("expected %.6f, got %.6f", 54.0/65.0, n)
	}
	if contrib := n * g.Weight; math.Abs(contrib-0.166154) > 1e-5 {
		t.Fatalf("expected contribution ~0.1662, got %.6f", contrib)
	}
}

func TestScore_DeveloperScenario(t *testing.T) {
	guide := developerGuide(t)
	selected := []domain.TraitVector{
		{domain.QuizTraitTechnical: 10, domain.QuizTraitPressure: 9},
		{domain.QuizTraitTechnical: 8},
		{domain.QuizTraitTechnical: 9, domain.QuizTraitPressure: -9},
		{domain.QuizTraitTechnical: 7},
		{domain.QuizTraitTechnical: 10},
	}

	res := DefaultQuizScorer.Score(selected, guide)
	if res.TraitTotals[domain.QuizTraitTechnical] != 44 {
		t.Fatalf("expected technical total 44, got %v", res.TraitTotals[domain.QuizTraitTechnical])
	}
	// 0.1662 + 0.06 + 0.015 + 0.0214 + 0.0333 + 0.04 = 0.3359
	if res.CompositeScore != 34 {
		t.Fatalf("expected composite 34, got %d", res.CompositeScore)
	}
	if res.BandKey != domain.BandLow || res.BandTitle != "Low" {
		t.Fatalf("expected low band, got %q", res.BandKey)
	}
}

func TestScore_EmptySelection(t *testing.T) {
	guide := developerGuide(t)
	res := DefaultQuizScorer.Score(nil, guide)
	if len(res.TraitTotals) != len(guide.Dimensions()) {
		t.Fatalf("expected every guide dimension in totals, got %v", res.TraitTotals)
	}
	for dim, v := range res.TraitTotals {
		if v != 0 {
			t.Fatalf("expected zero total for %s, got %v", dim, v)
		}
	}
	if res.BandKey != domain.BandLow {
		t.Fatalf("expected catch-all band, got %q", res.BandKey)
	}
}

func TestScore_BoundsAndClamping(t *testing.T) {
	guide := developerGuide(t)

	high := DefaultQuizScorer.Score([]domain.TraitVector{{
		domain.QuizTraitTechnical:       500,
		domain.QuizTraitPressure:        500,
		domain.QuizTraitCollaboration:   500,
		domain.QuizTraitCreativity:      500,
		domain.QuizTraitIndependence:    500,
		domain.QuizTraitWorkLifeBalance: 500,
	}}, guide)
	if high.CompositeScore != 100 || high.BandKey != domain.BandHigh {
		t.Fatalf("expected 100/high, got %d/%s", high.CompositeScore, high.BandKey)
	}

	low := DefaultQuizScorer.Score([]domain.TraitVector{{
		domain.QuizTraitTechnical:       -500,
		domain.QuizTraitPressure:        -500,
		domain.QuizTraitCollaboration:   -500,
		domain.QuizTraitCreativity:      -500,
		domain.QuizTraitIndependence:    -500,
		domain.QuizTraitWorkLifeBalance: -500,
	}}, guide)
	if low.CompositeScore != 0 || low.BandKey != domain.BandLow {
		t.Fatalf("expected 0/low, got %d/%s", low.CompositeScore, low.BandKey)
	}
}

func TestScore_BandBoundaryIsInclusive(t *testing.T) {
	guide, err := NewScoringGuide("q", domain.QuizScoringGuide{
		"technical": {Min: 0, Max: 100, Weight: 1},
	}, []domain.ResultBand{
		{Key: "high", Min: 70},
		{Key: "medium", Min: 45},
		{Key: "low", Min: 0},
	})
	if err != nil {
		t.Fatalf("new scoring guide: %v", err)
	}
	cases := map[float64]string{70: "high", 69: "medium", 45: "medium", 44: "low", 0: "low"}
	for total, want := range cases {
		res := DefaultQuizScorer.Score([]domain.TraitVector{{"technical": total}}, guide)
		if res.BandKey != want {
			t.Fatalf("total %v: expected band %s, got %s (composite %d)", total, want, res.BandKey, res.CompositeScore)
		}
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	guide := developerGuide(t)
	a := domain.TraitVector{domain.QuizTraitTechnical: 0.1, domain.QuizTraitCreativity: 3.3}
	b := domain.TraitVector{domain.QuizTraitTechnical: 0.2, domain.QuizTraitPressure: -1.7}
	c := domain.TraitVector{domain.QuizTraitTechnical: 0.3, domain.QuizTraitCreativity: 1e-9}

	base := DefaultQuizScorer.Score([]domain.TraitVector{a, b, c}, guide)
	perms := [][]domain.TraitVector{{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}
	for i, p := range perms {
		res := DefaultQuizScorer.Score(p, guide)
		if res.CompositeScore != base.CompositeScore || res.BandKey != base.BandKey {
			t.Fatalf("permutation %d: expected %d/%s, got %d/%s", i, base.CompositeScore, base.BandKey, res.CompositeScore, res.BandKey)
		}
		for dim, v := range base.TraitTotals {
			if res.TraitTotals[dim] != v {
				t.Fatalf("permutation %d: %s total %v != %v", i, dim, res.TraitTotals[dim], v)
			}
		}
	}
}

func TestScore_IgnoresDimensionsOutsideGuideInComposite(t *testing.T) {
	guide := developerGuide(t)
	base := DefaultQuizScorer.Score(nil, guide)
	res := DefaultQuizScorer.Score([]domain.TraitVector{{"leadership": 99}}, guide)
	if res.CompositeScore != base.CompositeScore {
		t.Fatalf("expected unchanged composite, got %d vs %d", res.CompositeScore, base.CompositeScore)
	}
	if res.TraitTotals["leadership"] != 99 {
		t.Fatalf("expected extra dimension reported in totals")
	}
}

func TestScore_ZeroValueGuide(t *testing.T) {
	res := DefaultQuizScorer.Score([]domain.TraitVector{{"technical": 4}}, ScoringGuide{})
	if res.CompositeScore != 0 || res.BandKey != "" {
		t.Fatalf("expected empty result for zero guide, got %+v", res)
	}
}

func TestNewScoringGuide_Rejects(t *testing.T) {
	okBands := []domain.ResultBand{{Key: "low", Min: 0}}
	cases := []struct {
		name  string
		guide domain.QuizScoringGuide
		bands []domain.ResultBand
	}{
		{"empty guide", domain.QuizScoringGuide{}, okBands},
		{"weights below one", domain.QuizScoringGuide{"a": {Min: 0, Max: 1, Weight: 0.5}, "b": {Min: 0, Max: 1, Weight: 0.4}}, okBands},
		{"weights above one", domain.QuizScoringGuide{"a": {Min: 0, Max: 1, Weight: 0.7}, "b": {Min: 0, Max: 1, Weight: 0.4}}, okBands},
		{"negative weight", domain.QuizScoringGuide{"a": {Min: 0, Max: 1, Weight: 1.5}, "b": {Min: 0, Max: 1, Weight: -0.5}}, okBands},
		{"max equals min", domain.QuizScoringGuide{"a": {Min: 5, Max: 5, Weight: 1}}, okBands},
		{"nan bound", domain.QuizScoringGuide{"a": {Min: math.NaN(), Max: 5, Weight: 1}}, okBands},
		{"no bands", domain.QuizScoringGuide{"a": {Min: 0, Max: 1, Weight: 1}}, nil},
		{"no catch-all", domain.QuizScoringGuide{"a": {Min: 0, Max: 1, Weight: 1}}, []domain.ResultBand{{Key: "high", Min: 70}, {Key: "medium", Min: 45}}},
		{"duplicate band", domain.QuizScoringGuide{"a": {Min: 0, Max: 1, Weight: 1}}, []domain.ResultBand{{Key: "low", Min: 0}, {Key: "low", Min: 50}}},
		{"empty band key", domain.QuizScoringGuide{"a": {Min: 0, Max: 1, Weight: 1}}, []domain.ResultBand{{Key: "", Min: 0}}},
	}
	for _, tc := range cases {
		_, err := NewScoringGuide("q1", tc.guide, tc.bands)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: expected configuration error, got %v", tc.name, err)
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Scope != "quiz q1" {
			t.Fatalf("%s: expected scoped ConfigError, got %v", tc.name, err)
		}
	}
}

func TestNewScoringGuide_AcceptsWithinTolerance(t *testing.T) {
	_, err := NewScoringGuide("q", domain.QuizScoringGuide{
		"a": {Min: 0, Max: 1, Weight: 0.1},
		"b": {Min: 0, Max: 1, Weight: 0.2},
		"c": {Min: 0, Max: 1, Weight: 0.7},
	}, []domain.ResultBand{{Key: "low", Min: -5}})
	if err != nil {
		t.Fatalf("expected guide to be accepted, got %v", err)
	}
}

func TestNewScoringGuide_SortsBandsDescending(t *testing.T) {
	guide := developerGuide(t)
	bands := guide.Bands()
	if bands[0].Key != domain.BandHigh || bands[1].Key != domain.BandMedium || bands[2].Key != domain.BandLow {
		t.Fatalf("unexpected band order: %+v", bands)
	}
}

func TestAccumulateTraits(t *testing.T) {
	got := AccumulateTraits(
		domain.TraitVector{"a": 1, "b": 2},
		domain.TraitVector{"a": -3},
		nil,
	)
	if got["a"] != -2 || got["b"] != 2 || len(got) != 2 {
		t.Fatalf("unexpected totals %v", got)
	}
}
