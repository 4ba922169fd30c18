package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

// PromptRepository implements repositories.PromptRepository on a line-based
// terminal. A single reader is shared by every question so that buffered
// input is never lost between prompts.
type PromptRepository struct {
	mu     sync.Mutex
	reader *bufio.Reader
	out    io.Writer
}

// NewStdPromptRepository reads from stdin and writes to stdout.
func NewStdPromptRepository() repositories.PromptRepository {
	return NewPromptRepository(os.Stdin, os.Stdout)
}

// NewPromptRepository creates a prompt over arbitrary streams.
func NewPromptRepository(in io.Reader, out io.Writer) *PromptRepository {
	return &PromptRepository{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Ask writes question and returns the next line, without its terminator.
func (it *PromptRepository) Ask(question string) (string, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	return it.ask(question)
}

// Choose repeats question until the answer exactly matches one of accepted.
func (it *PromptRepository) Choose(question string, accepted []string) (string, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	for {
		answer, err := it.ask(question)
		if err != nil {
			return "", err
		}
		if slices.Contains(accepted, answer) {
			return answer, nil
		}
	}
}

// Println writes an informational line.
func (it *PromptRepository) Println(args ...any) {
	it.mu.Lock()
	defer it.mu.Unlock()

	_, _ = fmt.Fprintln(it.out, args...)
}

func (it *PromptRepository) ask(question string) (string, error) {
	if _, err := fmt.Fprint(it.out, question); err != nil {
		return "", &entities.LocalToolError{Tool: "prompt", Err: err}
	}

	line, err := it.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", &entities.LocalToolError{Tool: "prompt", Err: err}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
