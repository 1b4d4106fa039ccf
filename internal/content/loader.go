package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"career-compass/internal/domain"
)

const (
	careersFile    = "careers.json"
	assessmentFile = "assessment.json"
	quizzesDir     = "quizzes"
)

// Bundle es el contenido crudo leido del disco, todavia sin validar.
type Bundle struct {
	Careers    []domain.CareerProfile
	Assessment domain.AssessmentBank
	Quizzes    []domain.RealityQuiz
}

// Load lee careers.json, assessment.json y quizzes/*.json desde dir.
func Load(dir string) (Bundle, error) {
	var b Bundle
	if err := readJSON(filepath.Join(dir, careersFile), &b.Careers); err != nil {
		return Bundle{}, err
	}
	if err := readJSON(filepath.Join(dir, assessmentFile), &b.Assessment); err != nil {
		return Bundle{}, err
	}

	paths, err := filepath.Glob(filepath.Join(dir, quizzesDir, "*.json"))
	if err != nil {
		return Bundle{}, fmt.Errorf("list quizzes: %w", err)
	}
	sort.Strings(paths)
	for _, p := range paths {
		var q domain.RealityQuiz
		if err := readJSON(p, &q); err != nil {
			return Bundle{}, err
		}
		b.Quizzes = append(b.Quizzes, q)
	}
	return b, nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("content file %s not found: %w", path, err)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
