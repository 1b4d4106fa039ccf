package service

import (
	"errors"
	"fmt"
	"strings"

	"career-compass/internal/domain"
)

// ValidateCareer exige id, titulo y al menos una categoria de rasgos con valores finitos.
func ValidateCareer(career domain.CareerProfile) error {
	scope := "career " + career.ID
	if strings.TrimSpace(career.ID) == "" {
		return newConfigError("career "+career.Title, "missing id")
	}
	if strings.TrimSpace(career.Title) == "" {
		return newConfigError(scope, "missing title")
	}
	present := 0
	for _, category := range domain.TraitCategories {
		vec := career.Profile(category)
		if len(vec) == 0 {
			continue
		}
		present++
		for _, dim := range vec.Dimensions() {
			if !isFinite(vec[dim]) {
				return newConfigError(scope, fmt.Sprintf("%s dimension %q is not finite", strings.ToLower(category), dim))
			}
		}
	}
	if present == 0 {
		return newConfigError(scope, "no interest, value or personality profile")
	}
	return nil
}

// ValidateCatalog valida cada carrera y la unicidad de ids; devuelve todos los problemas juntos.
func ValidateCatalog(careers []domain.CareerProfile) error {
	var errs []error
	seen := make(map[string]struct{}, len(careers))
	for _, c := range careers {
		if err := ValidateCareer(c); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[c.ID]; dup {
			errs = append(errs, newConfigError("career "+c.ID, "duplicate id"))
			continue
		}
		seen[c.ID] = struct{}{}
	}
	return errors.Join(errs...)
}

// ValidateAssessmentBank revisa ids unicos, categorias conocidas y deltas finitos.
func ValidateAssessmentBank(bank domain.AssessmentBank) error {
	scope := "assessment " + bank.Key
	if strings.TrimSpace(bank.Key) == "" {
		return newConfigError("assessment", "missing key")
	}
	if len(bank.Questions) == 0 {
		return newConfigError(scope, "no questions")
	}
	var errs []error
	questions := make(map[string]struct{}, len(bank.Questions))
	for _, q := range bank.Questions {
		if q.ID == "" {
			errs = append(errs, newConfigError(scope, "question with empty id"))
			continue
		}
		if _, dup := questions[q.ID]; dup {
			errs = append(errs, newConfigError(scope, fmt.Sprintf("duplicate question %q", q.ID)))
			continue
		}
		questions[q.ID] = struct{}{}
		if !isKnownCategory(q.Category) {
			errs = append(errs, newConfigError(scope, fmt.Sprintf("question %q has unknown category %q", q.ID, q.Category)))
		}
		if len(q.Options) == 0 {
			errs = append(errs, newConfigError(scope, fmt.Sprintf("question %q has no options", q.ID)))
		}
		options := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			if _, dup := options[o.ID]; dup || o.ID == "" {
				errs = append(errs, newConfigError(scope, fmt.Sprintf("question %q has empty or duplicate option %q", q.ID, o.ID)))
				continue
			}
			options[o.ID] = struct{}{}
			for dim, v := range o.Deltas {
				if !isFinite(v) {
					errs = append(errs, newConfigError(scope, fmt.Sprintf("option %s/%s delta %q is not finite", q.ID, o.ID, dim)))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func isKnownCategory(category string) bool {
	for _, c := range domain.TraitCategories {
		if c == category {
			return true
		}
	}
	return false
}

// LoadedQuiz es un reality quiz cuyo contenido y guia ya fueron validados.
type LoadedQuiz struct {
	Quiz  domain.RealityQuiz
	Guide ScoringGuide
}

// LoadQuiz valida preguntas y opciones y construye la guia de puntaje.
func LoadQuiz(quiz domain.RealityQuiz) (LoadedQuiz, error) {
	scope := "quiz " + quiz.Key
	if strings.TrimSpace(quiz.Key) == "" {
		return LoadedQuiz{}, newConfigError("quiz "+quiz.Title, "missing key")
	}
	var errs []error
	questions := make(map[string]struct{}, len(quiz.Questions))
	for _, q := range quiz.Questions {
		if _, dup := questions[q.ID]; dup || q.ID == "" {
			errs = append(errs, newConfigError(scope, fmt.Sprintf("empty or duplicate question %q", q.ID)))
			continue
		}
		questions[q.ID] = struct{}{}
		if len(q.Options) == 0 {
			errs = append(errs, newConfigError(scope, fmt.Sprintf("question %q has no options", q.ID)))
		}
		options := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			if _, dup := options[o.ID]; dup || o.ID == "" {
				errs = append(errs, newConfigError(scope, fmt.Sprintf("question %q has empty or duplicate option %q", q.ID, o.ID)))
				continue
			}
			options[o.ID] = struct{}{}
			for dim, v := range o.Scores {
				if !isFinite(v) {
					errs = append(errs, newConfigError(scope, fmt.Sprintf("option %s/%s score %q is not finite", q.ID, o.ID, dim)))
				}
			}
		}
	}
	guide, err := NewScoringGuide(quiz.Key, quiz.ScoringGuide, quiz.ResultBands)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return LoadedQuiz{}, errors.Join(errs...)
	}
	return LoadedQuiz{Quiz: quiz, Guide: guide}, nil
}
