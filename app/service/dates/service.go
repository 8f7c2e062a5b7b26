package dates

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"asistente/app/client/llm"
	"asistente/app/service/intent"
	"asistente/app/service/normalizer"
	"asistente/app/service/session"

	"github.com/elliotchance/pie/v2"
	"github.com/markusmobius/go-dateparser"
	"github.com/samber/do"
)

type Extractor interface {
	ExtractDate(ctx context.Context, text string) (string, error)
}

// todayPhrases overlaps the intent package's date vocabulary on purpose:
// that vocabulary decides whether a question is date-bearing at all, this
// list only gates the answer-locally shortcut. Do not merge them.
var todayPhrases = []string{"hoy", "qué día es", "que día es", "qué fecha es", "día actual"}

// Service turns a free-text question into an absolute date, when it carries
// one. Layered best-effort pipeline: normalize, shortcut "today" phrasings,
// ask the model to extract a date, pull a structured substring out of the
// reply, and finally try parsing the whole input directly.
type Service struct {
	llm        Extractor
	normalizer *normalizer.Service
	now        func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*llm.Client](di),
		do.MustInvoke[*normalizer.Service](di),
	), nil
}

func NewService(extractor Extractor, norm *normalizer.Service) *Service {
	return &Service{
		llm:        extractor,
		normalizer: norm,
		now:        time.Now,
	}
}

// Interpret resolves the date the question refers to, or nil when the
// question is not date-bearing. The normalized text is returned either way
// so the caller can fall back to the general handler with it.
func (s *Service) Interpret(ctx context.Context, ses *session.Session, text string) (*time.Time, string) {
	start := time.Now()

	normalized := s.normalizer.Normalize(ctx, text)
	ses.LastText = normalized

	slog.Debug("Normalized input", "text", normalized)

	if !intent.HasDateKeywords(normalized) {
		return nil, normalized
	}

	if isTodayQuery(normalized) {
		now := s.now()
		return &now, normalized
	}

	var target *time.Time

	reply, err := s.llm.ExtractDate(ctx, normalized)
	if err != nil {
		slog.Warn("Date extraction failed", "error", err)
	} else {
		slog.Debug("Raw model reply", "reply", reply)

		if fragment := ExtractDateString(reply); fragment != "" {
			target = s.parseFlexible(fragment)
		}
	}

	if target == nil {
		// the model reply was unusable, the raw input may parse directly
		target = s.parseFlexible(normalized)
	}

	if target != nil {
		adjusted := adjustFuture(*target, s.now())
		target = &adjusted
	}

	ses.LastDate = target

	slog.Debug("Date interpretation finished", "duration", time.Since(start))

	return target, normalized
}

func (s *Service) parseFlexible(text string) *time.Time {
	cfg := &dateparser.Configuration{
		CurrentTime: s.now(),
		Languages:   []string{"es"},
	}

	dt, err := dateparser.Parse(cfg, text)
	if err != nil || dt.Time.IsZero() {
		return nil
	}

	return &dt.Time
}

func isTodayQuery(text string) bool {
	lower := strings.ToLower(text)

	return pie.Any(todayPhrases, func(phrase string) bool {
		return strings.Contains(lower, phrase)
	})
}

// adjustFuture projects a past date one year forward. The projection keeps
// the calendar day; when the next year has no such day (Feb 29), a flat 365
// days is added instead. Applied at most once.
func adjustFuture(t, now time.Time) time.Time {
	if !t.Before(now) {
		return t
	}

	shifted := time.Date(now.Year()+1, t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	if shifted.Month() != t.Month() || shifted.Day() != t.Day() {
		return t.Add(365 * 24 * time.Hour)
	}

	return shifted
}
