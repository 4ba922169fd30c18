//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

// StubPromptRepository implements repositories.PromptRepository with scripted
// answers. Choose skips scripted answers that are not accepted, the way the
// terminal re-prompts.
type StubPromptRepository struct {
	Log *CallLog

	Answers   []string
	Questions []string
	Printed   []string
}

var _ repositories.PromptRepository = (*StubPromptRepository)(nil)

func (s *StubPromptRepository) Ask(question string) (string, error) {
	s.Questions = append(s.Questions, question)
	if len(s.Answers) == 0 {
		return "", errors.New("no scripted answer left")
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

func (s *StubPromptRepository) Choose(question string, accepted []string) (string, error) {
	for {
		answer, err := s.Ask(question)
		if err != nil {
			return "", err
		}
		if slices.Contains(accepted, answer) {
			s.Log.Record("prompt " + answer)
			return answer, nil
		}
	}
}

func (s *StubPromptRepository) Println(args ...any) {
	s.Printed = append(s.Printed, fmt.Sprintln(args...))
}
