package domain

import "time"

// AssessmentOption aporta un delta (no un puntaje absoluto) al perfil del estudiante.
type AssessmentOption struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Deltas TraitVector `json:"deltas"`
}

type AssessmentQuestion struct {
	ID       string             `json:"id"`
	Category string             `json:"category"`
	Prompt   string             `json:"prompt"`
	Options  []AssessmentOption `json:"options"`
}

// AssessmentBank agrupa el inventario de intereses, el ranking de valores y los indicadores de personalidad.
type AssessmentBank struct {
	Key       string               `json:"key"`
	Title     string               `json:"title"`
	Questions []AssessmentQuestion `json:"questions"`
}

// AnswerSelection es lo que envia el cliente: una opcion por pregunta.
type AnswerSelection struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// AssessmentAnswer es una seleccion ya resuelta contra el banco de preguntas.
type AssessmentAnswer struct {
	QuestionID string      `json:"questionId"`
	OptionID   string      `json:"optionId"`
	Delta      TraitVector `json:"delta"`
}

// StudentTraitProfile es la suma de los deltas de una evaluacion enviada.
type StudentTraitProfile struct {
	AssessmentID string      `json:"assessmentId"`
	StudentID    string      `json:"studentId"`
	Traits       TraitVector `json:"traits"`
	SubmittedAt  time.Time   `json:"submittedAt"`
}

// Assessment es el registro persistido de un envio; las evaluaciones son inmutables.
type Assessment struct {
	ID        string            `json:"id"`
	StudentID string            `json:"studentId"`
	BankKey   string            `json:"bankKey"`
	Answers   []AnswerSelection `json:"answers"`
	CreatedAt time.Time         `json:"createdAt"`
}

// AssessmentResult combina el perfil con las coincidencias recalculadas contra el catalogo actual.
type AssessmentResult struct {
	Profile StudentTraitProfile `json:"profile"`
	Matches []MatchResult       `json:"matches"`
}
