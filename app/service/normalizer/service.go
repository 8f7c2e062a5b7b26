package normalizer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"asistente/app/client/llm"
	"asistente/app/service/speller"

	"github.com/samber/do"
)

type Dictionary interface {
	Unknown(token string) bool
	Correct(token string) string
}

type GrammarFixer interface {
	CorrectGrammar(ctx context.Context, text string) (string, error)
}

// Service cleans up noisy user input in two stages: the local dictionary
// fixes typos token by token, then the model fixes grammar and punctuation
// holistically. The model is only consulted when the dictionary flagged
// something, so clean input costs nothing.
type Service struct {
	dict    Dictionary
	grammar GrammarFixer
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*speller.Service](di),
		do.MustInvoke[*llm.Client](di),
	), nil
}

func NewService(dict Dictionary, grammar GrammarFixer) *Service {
	return &Service{
		dict:    dict,
		grammar: grammar,
	}
}

// Normalize returns the cleaned-up text. Input with no out-of-vocabulary
// tokens passes through unchanged, modulo trimming.
func (s *Service) Normalize(ctx context.Context, text string) string {
	tokens := strings.Fields(text)

	hasUnknown := false
	for _, token := range tokens {
		if s.dict.Unknown(token) {
			hasUnknown = true
			break
		}
	}

	if !hasUnknown {
		return strings.TrimSpace(text)
	}

	start := time.Now()

	corrected := make([]string, len(tokens))
	for i, token := range tokens {
		if s.dict.Unknown(token) {
			corrected[i] = s.dict.Correct(token)
		} else {
			corrected[i] = token
		}
	}

	joined := strings.Join(corrected, " ")

	slog.Debug("Spelling correction finished", "duration", time.Since(start))

	fixed, err := s.grammar.CorrectGrammar(ctx, joined)
	if err != nil {
		slog.Warn("Grammar correction failed, keeping spell-corrected text", "error", err)
		return joined
	}

	return strings.TrimSpace(fixed)
}
