package domain

import (
	"sort"
	"time"
)

const (
	TraitCategoryInterest    = "INTEREST"
	TraitCategoryValue       = "VALUE"
	TraitCategoryPersonality = "PERSONALITY"
)

// TraitCategories respeta el orden usado al promediar y al redactar razones.
var TraitCategories = []string{
	TraitCategoryInterest,
	TraitCategoryValue,
	TraitCategoryPersonality,
}

// TraitVector mapea una dimension (p.ej. "investigative") a su puntaje.
// Los valores pueden ser negativos cuando una opcion penaliza un rasgo.
type TraitVector map[string]float64

// Get devuelve 0 para dimensiones ausentes.
func (v TraitVector) Get(dimension string) float64 {
	if v == nil {
		return 0
	}
	return v[dimension]
}

// Dimensions devuelve las dimensiones ordenadas alfabeticamente.
func (v TraitVector) Dimensions() []string {
	dims := make([]string, 0, len(v))
	for d := range v {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	return dims
}

func (v TraitVector) Clone() TraitVector {
	if v == nil {
		return nil
	}
	out := make(TraitVector, len(v))
	for d, val := range v {
		out[d] = val
	}
	return out
}

// StudentTrait es una fila persistida del perfil acumulado de una evaluacion.
type StudentTrait struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessmentId"`
	Trait        string    `json:"trait"`
	Value        float64   `json:"value"`
	CreatedAt    time.Time `json:"createdAt"`
}
