package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"asistente/app/config"

	_ "embed"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

//go:embed grammar_prompt.txt
var grammarPromptTemplate string

//go:embed date_prompt.txt
var datePromptTemplate string

//go:embed answer_prompt.txt
var answerPromptTemplate string

const maxCompletionDuration = 30 * time.Second

// Client wraps the language model behind the three prompt templates the
// assistant uses. The model is an opaque text-in/text-out oracle: no
// output schema is enforced here, callers post-process the reply.
type Client struct {
	model *ollama.LLM
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	model, err := ollama.New(
		ollama.WithServerURL(cfg.LLM.BaseURL),
		ollama.WithModel(cfg.LLM.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &Client{
		model: model,
	}, nil
}

// CorrectGrammar asks the model to fix spelling, grammar and punctuation,
// returning the corrected text verbatim.
func (c *Client) CorrectGrammar(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, grammarPromptTemplate, text)
}

// ExtractDate asks the model for the explicit or implicit date in the text,
// as free text or YYYY-MM-DD.
func (c *Client) ExtractDate(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, datePromptTemplate, text)
}

// Answer runs the general knowledge prompt on the question.
func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	return c.complete(ctx, answerPromptTemplate, question)
}

func (c *Client) complete(ctx context.Context, template, text string) (string, error) {
	prompt := strings.ReplaceAll(template, "{text}", text)

	ctx, cancel := context.WithTimeout(ctx, maxCompletionDuration)
	defer cancel()

	start := time.Now()

	reply, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	slog.Debug("Model call finished", "duration", time.Since(start))

	return strings.TrimSpace(reply), nil
}
