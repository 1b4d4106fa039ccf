package service

import (
	"fmt"
	"math"
	"sort"

	"career-compass/internal/domain"
)

// weightTolerance es la holgura aceptada para que los pesos sumen 1.0.
const weightTolerance = 1e-6

// ScoringGuide es una guia de puntaje ya validada junto con sus bandas.
// Solo se construye con NewScoringGuide: los pesos suman 1.0 y existe una banda con min <= 0.
type ScoringGuide struct {
	quizKey    string
	dimensions []string
	guide      domain.QuizScoringGuide
	bands      []domain.ResultBand
}

// NewScoringGuide valida pesos, rangos y cobertura de bandas.
func NewScoringGuide(quizKey string, guide domain.QuizScoringGuide, bands []domain.ResultBand) (ScoringGuide, error) {
	scope := "quiz " + quizKey
	if len(guide) == 0 {
		return ScoringGuide{}, newConfigError(scope, "scoring guide is empty")
	}

	var weightSum float64
	dims := make([]string, 0, len(guide))
	for dim, g := range guide {
		if dim == "" {
			return ScoringGuide{}, newConfigError(scope, "scoring guide has an empty dimension name")
		}
		if !isFinite(g.Min) || !isFinite(g.Max) || !isFinite(g.Weight) {
			return ScoringGuide{}, newConfigError(scope, fmt.Sprintf("dimension %q has a non-finite bound or weight", dim))
		}
		if g.Max <= g.Min {
			return ScoringGuide{}, newConfigError(scope, fmt.Sprintf("dimension %q has max %.2f <= min %.2f", dim, g.Max, g.Min))
		}
		if g.Weight < 0 {
			return ScoringGuide{}, newConfigError(scope, fmt.Sprintf("dimension %q has negative weight %.4f", dim, g.Weight))
		}
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		weightSum += guide[dim].Weight
	}
	if math.Abs(weightSum-1) > weightTolerance {
		return ScoringGuide{}, newConfigError(scope, fmt.Sprintf("weights sum to %.6f, expected 1.0", weightSum))
	}

	if len(bands) == 0 {
		return ScoringGuide{}, newConfigError(scope, "no result bands defined")
	}
	sorted := make([]domain.ResultBand, len(bands))
	copy(sorted, bands)
	seen := make(map[string]struct{}, len(sorted))
	hasCatchAll := false
	for _, b := range sorted {
		if b.Key == "" {
			return ScoringGuide{}, newConfigError(scope, "result band with empty key")
		}
		if _, dup := seen[b.Key]; dup {
			return ScoringGuide{}, newConfigError(scope, fmt.Sprintf("duplicate result band %q", b.Key))
		}
		seen[b.Key] = struct{}{}
		if !isFinite(b.Min) {
			return ScoringGuide{}, newConfigError(scope, fmt.Sprintf("result band %q has a non-finite min", b.Key))
		}
		if b.Min <= 0 {
			hasCatchAll = true
		}
	}
	if !hasCatchAll {
		return ScoringGuide{}, newConfigError(scope, "no result band with min <= 0 (catch-all band missing)")
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Min > sorted[j].Min })

	copied := make(domain.QuizScoringGuide, len(guide))
	for dim, g := range guide {
		copied[dim] = g
	}
	return ScoringGuide{
		quizKey:    quizKey,
		dimensions: dims,
		guide:      copied,
		bands:      sorted,
	}, nil
}

func (g ScoringGuide) QuizKey() string { return g.quizKey }

// Bands devuelve las bandas ordenadas por min descendente.
func (g ScoringGuide) Bands() []domain.ResultBand {
	out := make([]domain.ResultBand, len(g.bands))
	copy(out, g.bands)
	return out
}

func (g ScoringGuide) Dimensions() []string {
	out := make([]string, len(g.dimensions))
	copy(out, g.dimensions)
	return out
}

// QuizScorer calcula el puntaje compuesto de un reality quiz.
type QuizScorer struct{}

// DefaultQuizScorer permite uso directo sin instanciar.
var DefaultQuizScorer = QuizScorer{}

// Score acumula los rasgos de las opciones elegidas, normaliza cada dimension de la guia
// y elige la primera banda cuyo min no supere el compuesto.
func (QuizScorer) Score(selected []domain.TraitVector, guide ScoringGuide) domain.QuizResult {
	totals := AccumulateTraits(selected...)
	for _, dim := range guide.dimensions {
		if _, ok := totals[dim]; !ok {
			totals[dim] = 0
		}
	}

	var weighted float64
	for _, dim := range guide.dimensions {
		g := guide.guide[dim]
		weighted += normalizeTrait(totals[dim], g) * g.Weight
	}
	composite := int(math.Round(100 * weighted))

	band := guide.selectBand(composite)
	return domain.QuizResult{
		CompositeScore: composite,
		BandKey:        band.Key,
		BandTitle:      band.Title,
		BandMessage:    band.Message,
		TraitTotals:    totals,
	}
}

func normalizeTrait(total float64, g domain.TraitGuide) float64 {
	n := (total - g.Min) / (g.Max - g.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

func (g ScoringGuide) selectBand(composite int) domain.ResultBand {
	for _, b := range g.bands {
		if float64(composite) >= b.Min {
			return b
		}
	}
	// Solo alcanzable con el valor cero de ScoringGuide.
	if len(g.bands) == 0 {
		return domain.ResultBand{}
	}
	return g.bands[len(g.bands)-1]
}

// AccumulateTraits suma los deltas por dimension. Cada dimension se suma en orden
// ascendente de valor, asi el total es identico para cualquier orden de respuestas.
func AccumulateTraits(deltas ...domain.TraitVector) domain.TraitVector {
	values := make(map[string][]float64)
	for _, delta := range deltas {
		for dim, v := range delta {
			values[dim] = append(values[dim], v)
		}
	}
	totals := make(domain.TraitVector, len(values))
	for dim, vs := range values {
		sort.Float64s(vs)
		var sum float64
		for _, v := range vs {
			sum += v
		}
		totals[dim] = sum
	}
	return totals
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
