// Package assistant proxies chat prompts to the LLM. The contract is
// deliberately narrow: send prompt, return text.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Assistant answers free-form budgeting questions, optionally grounded
// in the user's detected recurring series.
type Assistant struct {
	model string
	log   zerolog.Logger
}

// New creates an assistant for the given model name. Credentials come
// from the environment, same as the rest of the Google clients.
func New(model string, log zerolog.Logger) *Assistant {
	if model == "" {
		model = DefaultModel
	}
	return &Assistant{model: model, log: log}
}

// Ask sends the prompt to the model and returns the reply text. series
// may be nil; when present it is summarized into the prompt so the
// model can reference the user's actual subscriptions.
func (a *Assistant) Ask(ctx context.Context, prompt string, series []domain.RecurringSeries) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("Ask: empty prompt")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Ask: create genai client: %w", err)
	}

	fullPrompt := buildPrompt(prompt, series)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fullPrompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Ask: generate content: %w", err)
	}

	text := cleanModelText(resp.Text())
	if text == "" {
		return "", fmt.Errorf("Ask: empty response from model")
	}

	a.log.Info().Str("model", a.model).Int("reply_len", len(text)).Msg("Assistant reply generated")
	return text, nil
}

// cleanModelText strips Markdown code fences the model sometimes wraps
// replies in despite instructions.
func cleanModelText(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	return s
}
