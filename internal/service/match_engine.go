package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"career-compass/internal/domain"
)

const defaultReasonLimit = 3

// MatchEngine ordena carreras por cercania al perfil del estudiante.
// No tiene estado: puede usarse concurrentemente sin locks.
type MatchEngine struct {
	// ReasonLimit es la cantidad de razones por carrera; 0 usa el default (3).
	ReasonLimit int
}

// DefaultMatchEngine permite uso directo sin instanciar.
var DefaultMatchEngine = MatchEngine{}

type dimensionFit struct {
	category  string
	dimension string
	closeness float64
}

// ComputeMatches devuelve todas las carreras ordenadas por porcentaje de coincidencia.
// Las dimensiones ausentes en el estudiante cuentan como 0; nunca falla.
func (e MatchEngine) ComputeMatches(student domain.TraitVector, careers []domain.CareerProfile) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(careers))
	for _, career := range careers {
		score, fits := scoreCareer(student, career)
		results = append(results, domain.MatchResult{
			CareerID:        career.ID,
			Title:           career.Title,
			MatchPercentage: int(math.Round(score)),
			MatchReasons:    e.reasons(career, fits),
			Score:           score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Title != results[j].Title {
			return results[i].Title < results[j].Title
		}
		return results[i].CareerID < results[j].CareerID
	})
	return results
}

// scoreCareer promedia la cercania por categoria y luego entre categorias presentes.
func scoreCareer(student domain.TraitVector, career domain.CareerProfile) (float64, []dimensionFit) {
	var (
		sum        float64
		categories int
		fits       []dimensionFit
	)
	for _, category := range domain.TraitCategories {
		target := career.Profile(category)
		if len(target) == 0 {
			continue
		}
		var catSum float64
		for _, dim := range target.Dimensions() {
			c := closeness(student.Get(dim), target[dim])
			catSum += c
			fits = append(fits, dimensionFit{category: category, dimension: dim, closeness: c})
		}
		sum += catSum / float64(len(target))
		categories++
	}
	if categories == 0 {
		return 0, nil
	}
	return sum / float64(categories), fits
}

func closeness(student, target float64) float64 {
	c := 100 - math.Abs(student-target)
	if c < 0 {
		return 0
	}
	return c
}

func (e MatchEngine) reasons(career domain.CareerProfile, fits []dimensionFit) []string {
	limit := e.ReasonLimit
	if limit <= 0 {
		limit = defaultReasonLimit
	}
	ranked := make([]dimensionFit, len(fits))
	copy(ranked, fits)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].closeness != ranked[j].closeness {
			return ranked[i].closeness > ranked[j].closeness
		}
		return ranked[i].dimension < ranked[j].dimension
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	reasons := make([]string, 0, len(ranked))
	for _, f := range ranked {
		reasons = append(reasons, reasonSentence(f, career.Title))
	}
	return reasons
}

func reasonSentence(f dimensionFit, title string) string {
	label := dimensionLabel(f.dimension)
	pct := int(math.Round(f.closeness))
	switch f.category {
	case domain.TraitCategoryInterest:
		return fmt.Sprintf("Your %s interests line up with the work of a %s (%d%% fit).", label, title, pct)
	case domain.TraitCategoryValue:
		return fmt.Sprintf("How much you value %s matches what a %s career offers (%d%% fit).", label, title, pct)
	default:
		return fmt.Sprintf("Your %s suits the day-to-day of a %s (%d%% fit).", label, title, pct)
	}
}

// dimensionLabel convierte "working_conditions" o "workLifeBalance" en texto legible.
func dimensionLabel(dimension string) string {
	var b strings.Builder
	for i, r := range dimension {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
