package dates

import "regexp"

var (
	isoDatePattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	longDatePattern = regexp.MustCompile(`(?i)\d{1,2} de [a-záéíóúñ]+( del| de)? \d{4}`)
)

// ExtractDateString pulls a date substring out of a model reply: the first
// strict YYYY-MM-DD occurrence wins, then a Spanish long-form date
// ("25 de diciembre de 2026"). Empty when the reply carries neither.
func ExtractDateString(reply string) string {
	if match := isoDatePattern.FindString(reply); match != "" {
		return match
	}

	return longDatePattern.FindString(reply)
}
