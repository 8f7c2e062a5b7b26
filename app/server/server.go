package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"asistente/app/config"
	"asistente/app/service/engine"

	_ "embed"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

//go:embed index.html
var indexPage string

var indexTemplate = template.Must(template.New("index").Parse(indexPage))

type Responder interface {
	Respond(ctx context.Context, question string) string
}

// Service serves the one-field web form: one question in, one answer out.
type Service struct {
	cfg       *config.Config
	responder Responder
	app       *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*engine.Service](di),
	), nil
}

func NewService(cfg *config.Config, responder Responder) *Service {
	s := &Service{
		cfg:       cfg,
		responder: responder,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Get("/", s.handleIndex)
	app.Post("/", s.handleAsk)

	s.app = app

	return s
}

func (s *Service) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	go func() {
		<-ctx.Done()
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	slog.Info("🌐 Web form available", "addr", addr)

	if err := s.app.Listen(addr); err != nil {
		return fmt.Errorf("web server stopped: %w", err)
	}

	return nil
}

func (s *Service) handleIndex(c *fiber.Ctx) error {
	return s.render(c, "")
}

func (s *Service) handleAsk(c *fiber.Ctx) error {
	question := strings.TrimSpace(c.FormValue("pregunta"))

	var answer string
	if question != "" {
		answer = s.responder.Respond(c.UserContext(), question)
	}

	return s.render(c, answer)
}

func (s *Service) render(c *fiber.Ctx, answer string) error {
	var buf strings.Builder

	if err := indexTemplate.Execute(&buf, fiber.Map{"Respuesta": answer}); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	c.Type("html", "utf-8")

	return c.SendString(buf.String())
}
