package engine

import (
	"fmt"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

func formatLongDateTime(t time.Time) string {
	return fmt.Sprintf("%s, %s", formatLongDate(t), t.Format("15:04"))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
