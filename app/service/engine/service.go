package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"asistente/app/client/llm"
	"asistente/app/service/currency"
	"asistente/app/service/dates"
	"asistente/app/service/intent"
	"asistente/app/service/session"

	"github.com/samber/do"
)

const answerUnavailableMessage = "⚠️ No puedo responder en este momento."

type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

type Service struct {
	ses      *session.Session
	currency *currency.Service
	dates    *dates.Service
	answerer Answerer
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*session.Session](di),
		do.MustInvoke[*currency.Service](di),
		do.MustInvoke[*dates.Service](di),
		do.MustInvoke[*llm.Client](di),
	), nil
}

func NewService(
	ses *session.Session,
	currencySvc *currency.Service,
	datesSvc *dates.Service,
	answerer Answerer,
) *Service {
	return &Service{
		ses:      ses,
		currency: currencySvc,
		dates:    datesSvc,
		answerer: answerer,
	}
}

// Respond answers one question end to end. It never fails: anything that
// cannot be resolved structurally degrades to the general knowledge model.
func (s *Service) Respond(ctx context.Context, question string) string {
	start := time.Now()
	detected := intent.Classify(question)

	defer func() {
		slog.Info("Processed question",
			"intent", detected.String(),
			"duration", time.Since(start))
	}()

	switch detected {
	case intent.Currency:
		if answer, ok := s.currency.Resolve(ctx, s.ses, question); ok {
			return answer
		}

		// a currency-shaped question that did not resolve becomes a general one
		return s.answerGeneral(ctx, question)

	case intent.Date:
		return s.timeRemaining(ctx, question)

	default:
		return s.answerGeneral(ctx, question)
	}
}

func (s *Service) timeRemaining(ctx context.Context, question string) string {
	target, normalized := s.dates.Interpret(ctx, s.ses, question)
	if target == nil {
		return s.answerGeneral(ctx, normalized)
	}

	now := time.Now()

	if sameDay(*target, now) {
		return fmt.Sprintf("📆 Hoy es %s.", formatLongDate(*target))
	}

	diff := target.Sub(now)
	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	return fmt.Sprintf("⏱️ Faltan %d días, %d horas y %d minutos para %s.",
		days, hours, minutes, formatLongDateTime(*target))
}

func (s *Service) answerGeneral(ctx context.Context, question string) string {
	answer, err := s.answerer.Answer(ctx, question)
	if err != nil {
		slog.Error("General answer failed", "error", err, "telegram", true)
		return answerUnavailableMessage
	}

	return answer
}
