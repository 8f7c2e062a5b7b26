package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"asistente/app/client/rates"
	"asistente/app/service/session"

	"github.com/samber/do"
)

const rateUnavailableMessage = "❌ No se pudo obtener la tasa de cambio en este momento."

const (
	defaultFromCode = "PEN"
	defaultToCode   = "USD"
)

type Converter interface {
	Convert(ctx context.Context, from, to string, amount float64) (float64, error)
}

// amount, optional source currency, optional connector, optional target currency
var amountPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(usd|eur|pen|ars|mxn|clp|soles|dólares|euros)?\s*(a|en)?\s*(usd|eur|pen|ars|mxn|clp|soles|dólares|euros)?`)

var currencyAliases = map[string]string{
	"soles":   "PEN",
	"dólares": "USD",
	"euros":   "EUR",
}

type parsedAmount struct {
	amount float64
	from   string
	to     string
}

type Service struct {
	converter Converter
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*rates.Client](di)), nil
}

func NewService(converter Converter) *Service {
	return &Service{
		converter: converter,
	}
}

// Resolve parses an amount plus source/target currencies out of the text
// and looks up the conversion. The second return value is false when the
// text carries nothing resolvable and the caller should fall back to the
// general handler.
func (s *Service) Resolve(ctx context.Context, ses *session.Session, text string) (string, bool) {
	normalized := normalizeShorthand(text)

	parsed, ok := tryDirectParse(normalized)
	if !ok {
		parsed, ok = tryWithMemoryPrefix(ses, normalized)
	}
	if !ok {
		return "", false
	}

	ses.RememberAmount(parsed.amount, parsed.from)

	result, err := s.converter.Convert(ctx, parsed.from, parsed.to, parsed.amount)
	if err != nil {
		if errors.Is(err, rates.ErrUnavailable) {
			slog.Warn("Rate service unreachable", "error", err)
			return rateUnavailableMessage, true
		}

		slog.Warn("Rate lookup failed", "error", err)
		return "", false
	}

	return fmt.Sprintf("💱 %.2f %s = %.2f %s", parsed.amount, parsed.from, result, parsed.to), true
}

func normalizeShorthand(text string) string {
	lower := strings.ToLower(text)
	lower = strings.ReplaceAll(lower, ",", ".")
	lower = strings.ReplaceAll(lower, "s/", "pen ")
	lower = strings.ReplaceAll(lower, "$", "usd ")

	return lower
}

func tryDirectParse(text string) (parsedAmount, bool) {
	match := amountPattern.FindStringSubmatch(text)
	if match == nil {
		return parsedAmount{}, false
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return parsedAmount{}, false
	}

	return parsedAmount{
		amount: amount,
		from:   resolveCode(match[2], defaultFromCode),
		to:     resolveCode(match[4], defaultToCode),
	}, true
}

// tryWithMemoryPrefix completes an elliptical follow-up ("y en euros?")
// by prepending the previously parsed amount and currency. One terminal
// retry, no recursion: the synthesized text always carries an amount.
func tryWithMemoryPrefix(ses *session.Session, text string) (parsedAmount, bool) {
	if ses.LastAmount == nil || ses.LastCurrency == "" {
		return parsedAmount{}, false
	}

	if !strings.Contains(text, " a ") && !strings.Contains(text, " en ") {
		return parsedAmount{}, false
	}

	prefixed := fmt.Sprintf("%s %s %s",
		strconv.FormatFloat(*ses.LastAmount, 'f', -1, 64),
		strings.ToLower(ses.LastCurrency),
		text)

	return tryDirectParse(prefixed)
}

func resolveCode(token, fallback string) string {
	if token == "" {
		return fallback
	}

	if code, ok := currencyAliases[token]; ok {
		return code
	}

	return strings.ToUpper(token)
}
