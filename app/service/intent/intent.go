package intent

import (
	"regexp"
	"strings"

	"github.com/elliotchance/pie/v2"
)

type Intent int

const (
	General Intent = iota
	Currency
	Date
)

func (i Intent) String() string {
	switch i {
	case Currency:
		return "currency"
	case Date:
		return "date"
	default:
		return "general"
	}
}

// a digit somewhere before a currency word
var currencyPattern = regexp.MustCompile(`\d+.*(dólares|soles|usd|eur|pen|ars|mxn|clp|euros)`)

var dateKeywords = []string{
	"cuándo", "cuando", "falta", "faltan", "queda", "quedan", "navidad",
	"año nuevo", "cumpleaños", "semana santa", "hoy", "qué día", "que día",
	"que fecha", "fecha actual", "día actual", "hasta", "para", "cuánto falta",
}

// Classify labels a question by surface text alone. Order matters:
// a question carrying both an amount and a date keyword is a currency one.
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	if currencyPattern.MatchString(lower) {
		return Currency
	}

	if HasDateKeywords(lower) {
		return Date
	}

	return General
}

// HasDateKeywords reports whether the text mentions any of the temporal
// vocabulary (interrogatives, relative-time words, named holidays).
func HasDateKeywords(text string) bool {
	lower := strings.ToLower(text)

	return pie.Any(dateKeywords, func(keyword string) bool {
		return strings.Contains(lower, keyword)
	})
}
