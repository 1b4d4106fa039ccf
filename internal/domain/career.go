package domain

import "time"

// CareerProfile describe el candidato "ideal" de una carrera (escala 0-100).
type CareerProfile struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Summary            string      `json:"summary,omitempty"`
	InterestProfile    TraitVector `json:"interestProfile,omitempty"`
	ValueProfile       TraitVector `json:"valueProfile,omitempty"`
	PersonalityProfile TraitVector `json:"personalityProfile,omitempty"`
	UpdatedAt          time.Time   `json:"updatedAt,omitempty"`
}

// Profile devuelve el vector de la categoria pedida.
func (c CareerProfile) Profile(category string) TraitVector {
	switch category {
	case TraitCategoryInterest:
		return c.InterestProfile
	case TraitCategoryValue:
		return c.ValueProfile
	case TraitCategoryPersonality:
		return c.PersonalityProfile
	default:
		return nil
	}
}

// CareerEmbeddingDimensions fija el orden de las columnas del embedding de carreras.
var CareerEmbeddingDimensions = []struct {
	Category  string
	Dimension string
}{
	{TraitCategoryInterest, "realistic"},
	{TraitCategoryInterest, "investigative"},
	{TraitCategoryInterest, "artistic"},
	{TraitCategoryInterest, "social"},
	{TraitCategoryInterest, "enterprising"},
	{TraitCategoryInterest, "conventional"},
	{TraitCategoryValue, "achievement"},
	{TraitCategoryValue, "independence"},
	{TraitCategoryValue, "recognition"},
	{TraitCategoryValue, "relationships"},
	{TraitCategoryValue, "support"},
	{TraitCategoryValue, "working_conditions"},
	{TraitCategoryPersonality, "openness"},
	{TraitCategoryPersonality, "conscientiousness"},
	{TraitCategoryPersonality, "extraversion"},
	{TraitCategoryPersonality, "agreeableness"},
	{TraitCategoryPersonality, "stability"},
}

// Embedding aplana los tres perfiles en el orden de CareerEmbeddingDimensions.
func (c CareerProfile) Embedding() []float32 {
	out := make([]float32, len(CareerEmbeddingDimensions))
	for i, d := range CareerEmbeddingDimensions {
		out[i] = float32(c.Profile(d.Category).Get(d.Dimension))
	}
	return out
}

// MatchResult se deriva en cada corrida; nunca se persiste por separado.
type MatchResult struct {
	CareerID        string   `json:"careerId"`
	Title           string   `json:"title"`
	MatchPercentage int      `json:"matchPercentage"`
	MatchReasons    []string `json:"matchReasons"`
	// Score es el valor sin redondear usado para ordenar.
	Score float64 `json:"-"`
}
