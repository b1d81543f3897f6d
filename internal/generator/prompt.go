package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/swatches/internal/colour"
)

// DefaultModel is the model asked for prompt palettes.
const DefaultModel = "gemini-2.5-flash"

// promptTemplate asks for plain hex values so the reply can be scraped
// without a JSON schema.
const promptTemplate = `Suggest %d distinct colours for a colour palette inspired by: %q.
Reply with one hex colour per line in the form #rrggbb and nothing else.`

var hexToken = regexp.MustCompile(`#?\b[0-9a-fA-F]{6}\b`)

// Completer turns a prompt into model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenAICompleter is a Completer backed by the Google Gen AI SDK.
type GenAICompleter struct {
	client *genai.Client
	model  string
}

// NewGenAICompleter creates a Gemini API client. apiKey is usually read from
// GOOGLE_API_KEY by the caller.
func NewGenAICompleter(ctx context.Context, apiKey, model string) (*GenAICompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required for the prompt generator")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	return &GenAICompleter{client: client, model: model}, nil
}

// Complete sends prompt to the model and joins the text parts of the first candidate.
func (g *GenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// ExtractHexes pulls every six digit hex colour out of free text, normalised
// and in order of appearance. Duplicates are kept.
func ExtractHexes(text string) []string {
	var out []string
	for _, tok := range hexToken.FindAllString(text, -1) {
		if !strings.HasPrefix(tok, "#") {
			tok = "#" + tok
		}
		hex, err := colour.Normalize(tok)
		if err != nil {
			continue
		}
		out = append(out, hex)
	}
	return out
}

// NewPrompt asks completer for count colours matching prompt and returns a
// generator that serves them before switching to fallback. A failed request
// is logged and leaves only the fallback.
func NewPrompt(ctx context.Context, completer Completer, prompt string, count int, fallback Generator, logger hclog.Logger) *Sequence {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	text, err := completer.Complete(ctx, fmt.Sprintf(promptTemplate, count, prompt))
	if err != nil {
		logger.Warn("prompt generator unavailable, using fallback", "error", err)
		return NewSequence(fallback)
	}

	colours := ExtractHexes(text)
	if len(colours) > count {
		colours = colours[:count]
	}
	logger.Debug("prompt palette received", "prompt", prompt, "colours", len(colours))
	return NewSequence(fallback, colours...)
}
