// Package prompts sources new French prompt sentences for
// contributors to translate. Sentences come from a public parallel
// corpus, are filtered for length and cleanliness, deduplicated
// against the existing prompt file, and appended to it.
package prompts

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"corpora/pkg/normalize"
)

// Filter decides whether a candidate sentence is usable as a prompt.
type Filter struct {
	// MinWords and MaxWords bound the sentence length; prompts are
	// short phrases a contributor can translate in one sitting.
	MinWords int
	MaxWords int
}

// DefaultFilter returns the filter used by the Kirundi project:
// between 3 and 12 words.
func DefaultFilter() Filter {
	return Filter{MinWords: 3, MaxWords: 12}
}

// Valid reports whether sentence passes the filter and is not already
// present in seen (keyed by normalize.Sentence).
func (f Filter) Valid(sentence string, seen map[string]struct{}) bool {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return false
	}
	// Multiple semicolons or markup tend to mark stage directions and
	// leftover HTML in subtitle corpora.
	if strings.Count(sentence, ";") > 1 {
		return false
	}
	if strings.ContainsAny(sentence, "<>") {
		return false
	}
	words := len(strings.Fields(sentence))
	if words < f.MinWords || words > f.MaxWords {
		return false
	}
	key := normalize.Sentence(sentence)
	if key == "" {
		return false
	}
	_, dup := seen[key]
	return !dup
}

// LoadExisting reads the prompt file and returns the normalized form
// of every line. A missing file is an empty set, not an error.
func LoadExisting(path string) (map[string]struct{}, error) {
	seen := make(map[string]struct{})

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return seen, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if key := normalize.Sentence(scanner.Text()); key != "" {
			seen[key] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return seen, nil
}

// Append adds sentences to the end of the prompt file, one per line,
// creating the file if needed. Existing lines are never rewritten.
func Append(path string, sentences []string) error {
	if len(sentences) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	for _, sentence := range sentences {
		if _, err := f.WriteString(sentence + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// Generator streams candidate sentences from a source corpus and
// collects the first n that pass the filter.
type Generator struct {
	client *Client
	filter Filter
	logger *zerolog.Logger
}

// NewGenerator creates a Generator over the given source client.
func NewGenerator(client *Client, filter Filter, logger *zerolog.Logger) *Generator {
	return &Generator{client: client, filter: filter, logger: logger}
}

// Generate returns up to n new sentences. seen is consulted for
// duplicates and extended with every accepted sentence, so a single
// set can thread through repeated calls.
func (g *Generator) Generate(ctx context.Context, n int, seen map[string]struct{}) ([]string, error) {
	var collected []string
	offset := 0

	for len(collected) < n {
		sentences, err := g.client.Page(ctx, offset)
		if err != nil {
			return collected, err
		}
		if len(sentences) == 0 {
			g.logger.Warn().Int("offset", offset).Msg("Source corpus exhausted")
			break
		}
		offset += pageSize

		for _, sentence := range sentences {
			if !g.filter.Valid(sentence, seen) {
				continue
			}
			sentence = strings.TrimSpace(sentence)
			collected = append(collected, sentence)
			seen[normalize.Sentence(sentence)] = struct{}{}
			if len(collected) == n {
				break
			}
		}
		g.logger.Debug().
			Int("collected", len(collected)).
			Int("wanted", n).
			Msg("Prompt search progress")
	}
	return collected, nil
}
