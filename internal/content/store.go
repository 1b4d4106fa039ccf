package content

import (
	"errors"
	"fmt"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

// Store es el contenido validado; se arma una vez al iniciar y no se modifica.
type Store struct {
	careers    []domain.CareerProfile
	assessment domain.AssessmentBank
	quizzes    []service.LoadedQuiz
}

// Build valida todo el bundle y junta cada problema en un unico error.
func Build(b Bundle) (*Store, error) {
	var errs []error
	if err := service.ValidateCatalog(b.Careers); err != nil {
		errs = append(errs, err)
	}
	if err := service.ValidateAssessmentBank(b.Assessment); err != nil {
		errs = append(errs, err)
	}

	careerIDs := make(map[string]struct{}, len(b.Careers))
	for _, c := range b.Careers {
		careerIDs[c.ID] = struct{}{}
	}

	quizKeys := make(map[string]struct{}, len(b.Quizzes))
	quizzes := make([]service.LoadedQuiz, 0, len(b.Quizzes))
	for _, q := range b.Quizzes {
		if _, dup := quizKeys[q.Key]; dup {
			errs = append(errs, &service.ConfigError{Scope: "quiz " + q.Key, Reason: "duplicate key"})
			continue
		}
		quizKeys[q.Key] = struct{}{}
		if q.CareerID != "" {
			if _, ok := careerIDs[q.CareerID]; !ok {
				errs = append(errs, &service.ConfigError{Scope: "quiz " + q.Key, Reason: fmt.Sprintf("unknown career %q", q.CareerID)})
			}
		}
		loaded, err := service.LoadQuiz(q)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		quizzes = append(quizzes, loaded)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Store{
		careers:    b.Careers,
		assessment: b.Assessment,
		quizzes:    quizzes,
	}, nil
}

// LoadStore combina Load y Build.
func LoadStore(dir string) (*Store, error) {
	b, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return Build(b)
}

func (s *Store) Careers() []domain.CareerProfile {
	out := make([]domain.CareerProfile, len(s.careers))
	for i, c := range s.careers {
		c.InterestProfile = c.InterestProfile.Clone()
		c.ValueProfile = c.ValueProfile.Clone()
		c.PersonalityProfile = c.PersonalityProfile.Clone()
		out[i] = c
	}
	return out
}

func (s *Store) Assessment() domain.AssessmentBank {
	return s.assessment
}

func (s *Store) Quizzes() []service.LoadedQuiz {
	out := make([]service.LoadedQuiz, len(s.quizzes))
	copy(out, s.quizzes)
	return out
}
