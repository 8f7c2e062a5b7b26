package session

import (
	"time"

	"github.com/samber/do"
)

// Session holds the conversational state used to complete elliptical
// follow-ups ("...y en euros?"). It lives for the whole process and is
// never reset between questions.
//
// The console loop and the web server touch it without synchronization.
// Known limitation, accepted: the state is advisory (it only seeds
// follow-up phrasing), the assistant is single-user and low-frequency.
type Session struct {
	LastAmount   *float64
	LastCurrency string
	LastText     string
	LastDate     *time.Time
}

func New(_ *do.Injector) (*Session, error) {
	return &Session{}, nil
}

// RememberAmount records the last parsed monetary amount and its
// source currency.
func (s *Session) RememberAmount(amount float64, currency string) {
	s.LastAmount = &amount
	s.LastCurrency = currency
}
