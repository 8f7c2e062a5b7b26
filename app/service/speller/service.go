package speller

import (
	"strings"
	"unicode"

	_ "embed"

	"github.com/sajari/fuzzy"
	"github.com/samber/do"
)

//go:embed palabras_es.txt
var wordlist string

const tokenPunctuation = ".,;:!?¡¿\"'()"

// Service is the local Spanish dictionary: membership lookup plus a
// fuzzy model trained on the same vocabulary for corrections.
type Service struct {
	known map[string]struct{}
	model *fuzzy.Model
}

func New(_ *do.Injector) (*Service, error) {
	return NewService(), nil
}

func NewService() *Service {
	words := strings.Fields(wordlist)

	known := make(map[string]struct{}, len(words))
	for _, word := range words {
		known[word] = struct{}{}
	}

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.Train(words)

	return &Service{
		known: known,
		model: model,
	}
}

// Unknown reports whether a token is out of vocabulary. Tokens carrying
// digits or symbols (amounts, codes, urls) are never flagged.
func (s *Service) Unknown(token string) bool {
	word := strings.ToLower(strings.Trim(token, tokenPunctuation))
	if word == "" {
		return false
	}

	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	_, ok := s.known[word]
	return !ok
}

// Correct returns the best single-token correction, or the token itself
// when the model has no suggestion. A token is never dropped.
//
// Suggestions are gated: the lexicon covers common Spanish, not the whole
// language, so a legitimate word it does not know must survive instead of
// being pulled onto its nearest neighbor.
func (s *Service) Correct(token string) string {
	word := strings.ToLower(token)

	fixed := s.model.SpellCheck(word)
	if fixed == "" || !plausibleFix(word, fixed) {
		return token
	}

	return fixed
}

// plausibleFix accepts a suggestion only when it is a single edit away and
// keeps the word's first letter (the letter a typist gets right).
func plausibleFix(word, suggestion string) bool {
	if word == suggestion {
		return true
	}

	wordRunes := []rune(word)
	suggestionRunes := []rune(suggestion)
	if len(wordRunes) == 0 || len(suggestionRunes) == 0 || wordRunes[0] != suggestionRunes[0] {
		return false
	}

	return fuzzy.Levenshtein(&word, &suggestion) <= 1
}
