package domain

import "time"

// Dimensiones del reality quiz.
const (
	QuizTraitTechnical       = "technical"
	QuizTraitPressure        = "pressure"
	QuizTraitCollaboration   = "collaboration"
	QuizTraitCreativity      = "creativity"
	QuizTraitIndependence    = "independence"
	QuizTraitWorkLifeBalance = "workLifeBalance"
)

// Claves de banda habituales.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
)

type QuizOption struct {
	ID     string      `json:"id"`
	Text   string      `json:"text"`
	Scores TraitVector `json:"scores"`
}

type QuizQuestion struct {
	ID       string       `json:"id"`
	Scenario string       `json:"scenario"`
	Options  []QuizOption `json:"options"`
}

// TraitGuide normaliza el total crudo de un rasgo a [0,1].
type TraitGuide struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Weight float64 `json:"weight"`
}

type QuizScoringGuide map[string]TraitGuide

type ResultBand struct {
	Key     string  `json:"key"`
	Min     float64 `json:"min"`
	Title   string  `json:"title"`
	Message string  `json:"message"`
}

// RealityQuiz es el contenido de un quiz de escenarios para una carrera.
type RealityQuiz struct {
	Key          string           `json:"key"`
	CareerID     string           `json:"careerId,omitempty"`
	Title        string           `json:"title"`
	Questions    []QuizQuestion   `json:"questions"`
	ScoringGuide QuizScoringGuide `json:"scoringGuide"`
	ResultBands  []ResultBand     `json:"resultBands"`
}

type QuizSelection struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

type QuizResult struct {
	CompositeScore int         `json:"compositeScore"`
	BandKey        string      `json:"bandKey"`
	BandTitle      string      `json:"bandTitle,omitempty"`
	BandMessage    string      `json:"bandMessage,omitempty"`
	TraitTotals    TraitVector `json:"traitTotals"`
}

// QuizAttempt es un resultado persistido.
type QuizAttempt struct {
	ID        string     `json:"id"`
	StudentID string     `json:"studentId"`
	QuizKey   string     `json:"quizKey"`
	Result    QuizResult `json:"result"`
	CreatedAt time.Time  `json:"createdAt"`
}
