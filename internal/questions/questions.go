// internal/questions/questions.go
package questions

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/guesslink/guesslink/internal/models"
)

// defaultPrompts is the built-in question set used by classic mode when no
// external file is configured.
var defaultPrompts = []string{
	"What is your favorite movie?",
	"What is your favorite TV show?",
	"What is your favorite dish?",
	"What is your favorite color?",
	"What is your favorite animal?",
	"What is your favorite season?",
	"What is your favorite sport?",
	"What is your favorite song?",
	"What is your favorite video game?",
	"What is your dream travel destination?",
}

// Set is a read-only collection of plain-text prompts, loaded once at startup.
type Set struct {
	prompts []string
}

// Default returns the embedded question set.
func Default() *Set {
	return &Set{prompts: defaultPrompts}
}

// LoadFile reads prompts from a text file, one per line. Blank lines and
// lines starting with '#' are skipped.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions file: %w", err)
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("questions file %s contains no prompts", path)
	}
	return &Set{prompts: prompts}, nil
}

// Len returns the number of prompts in the set.
func (s *Set) Len() int {
	return len(s.prompts)
}

// Draw returns up to n distinct prompts in shuffled order. The underlying
// set is never mutated.
func (s *Set) Draw(n int) []models.Question {
	idx := rand.Perm(len(s.prompts))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]models.Question, 0, n)
	for _, i := range idx[:n] {
		out = append(out, models.Question{Prompt: s.prompts[i]})
	}
	return out
}
