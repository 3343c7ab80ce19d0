package quiz

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/hearth/internal/models"
)

// DefaultQuestions returns the built-in question set.
func DefaultQuestions() []models.QuizQuestion {
	options := []string{"Paris", "London", "Berlin", "Madrid"}
	q := func(n int, text string, answer int) models.QuizQuestion {
		opts := make([]string, len(options))
		copy(opts, options)
		return models.QuizQuestion{Number: n, Question: text, Options: opts, AnswerIndex: answer}
	}
	return []models.QuizQuestion{
		q(1, "What is the capital of France?", 0),
		q(2, "What is the capital of England?", 1),
		q(3, "What is the capital of Germany?", 2),
	}
}

type bankFile struct {
	Questions []models.QuizQuestion `yaml:"questions"`
}

// ValidateQuestion checks that q has text, at least two options and an answer among them.
func ValidateQuestion(q models.QuizQuestion) error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Question, validation.Required),
		validation.Field(&q.Options, validation.Required, validation.Length(2, 0), validation.Each(validation.Required)),
		validation.Field(&q.AnswerIndex, validation.Min(0), validation.Max(len(q.Options)-1)),
	)
}

// ParseBank decodes a YAML question bank. Questions without a number are
// numbered by position.
func ParseBank(data []byte) ([]models.QuizQuestion, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("question bank has no questions")
	}
	for i := range f.Questions {
		if f.Questions[i].Number == 0 {
			f.Questions[i].Number = i + 1
		}
		if err := ValidateQuestion(f.Questions[i]); err != nil {
			return nil, fmt.Errorf("question %d: %w", f.Questions[i].Number, err)
		}
	}
	return f.Questions, nil
}

// LoadBank reads questions from path, or returns the built-in set when path is empty.
func LoadBank(path string) ([]models.QuizQuestion, error) {
	if path == "" {
		return DefaultQuestions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return ParseBank(data)
}
