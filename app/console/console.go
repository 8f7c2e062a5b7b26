package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"asistente/app/service/engine"

	"github.com/samber/do"
)

type Responder interface {
	Respond(ctx context.Context, question string) string
}

// Service is the interactive stdin loop.
type Service struct {
	responder Responder
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*engine.Service](di)), nil
}

func NewService(responder Responder) *Service {
	return &Service{
		responder: responder,
	}
}

// Run reads questions until EOF or cancellation. A failure while answering
// is reported inline and the loop keeps accepting input.
func (s *Service) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("¿Qué quieres saber?: ")

		if !scanner.Scan() {
			fmt.Println("\n👋 Hasta luego.")
			return
		}

		select {
		case <-ctx.Done():
			fmt.Println("👋 Hasta luego.")
			return
		default:
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		fmt.Println(s.answer(ctx, question))
	}
}

func (s *Service) answer(ctx context.Context, question string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("⚠️ Error: %v", r)
		}
	}()

	return s.responder.Respond(ctx, question)
}
