// Package generate turns contract text into a visual suite.
//
// The [Generator] interface is the seam between the application shell and
// the model. [Client] implements it with one Gemini call that declares
// [ResponseSchema] as the structured output format; [Static] serves a fixed
// suite for tests and offline demos.
//
// # Failure Model
//
// Every failure of a model-backed attempt (transport error, empty body,
// non-JSON body, missing required field) is reported as a single
// GENERATION_FAILED error carrying the fixed user-facing message
// [errors.MsgGeneration]. The underlying cause is wrapped for logs and never
// shown to users. There is no retry, no streaming and no caching.
//
// Callers must not submit blank text; the client rejects it with
// INVALID_INPUT before contacting the model.
package generate

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-3-pro-preview"

// API key environment variables, in lookup order.
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvLegacyAPIKey = "API_KEY"
)

// Generator decomposes contract text into a suite.
type Generator interface {
	Generate(ctx context.Context, rawText string) (*suite.Suite, error)
}

// Func adapts a function to the Generator interface.
type Func func(ctx context.Context, rawText string) (*suite.Suite, error)

func (f Func) Generate(ctx context.Context, rawText string) (*suite.Suite, error) {
	return f(ctx, rawText)
}

// APIKeyFromEnv returns the Gemini API key from the environment.
func APIKeyFromEnv() string {
	if k := os.Getenv(EnvAPIKey); k != "" {
		return k
	}
	return os.Getenv(EnvLegacyAPIKey)
}

// =============================================================================
// Client
// =============================================================================

// contentGenerator is the subset of *genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates suites with the Gemini API. It holds no per-request state
// and is safe for concurrent use.
type Client struct {
	models contentGenerator
	model  string
	logger *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides [DefaultModel]. An empty name is ignored.
func WithModel(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.model = name
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(l *log.Logger) Option { return func(c *Client) { c.logger = l } }

// NewClient connects to the Gemini API with apiKey.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "Gemini API key is required (set %s)", EnvAPIKey)
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create Gemini client")
	}
	return newClient(gc.Models, opts...), nil
}

func newClient(models contentGenerator, opts ...Option) *Client {
	c := &Client{models: models, model: DefaultModel, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string { return c.model }

// Config returns the request configuration sent with every call.
func Config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ResponseSchema(),
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	}
}

// Generate performs one model call for rawText and validates the reply.
func (c *Client) Generate(ctx context.Context, rawText string) (*suite.Suite, error) {
	if err := errors.ValidateContractText(rawText); err != nil {
		return nil, err
	}

	hooks := observability.Generation()
	hooks.OnGenerateStart(ctx, c.model, len(rawText))
	start := time.Now()

	s, err := c.generate(ctx, rawText)
	elapsed := time.Since(start)

	sheets := 0
	if s != nil {
		sheets = len(s.Sheets)
	}
	hooks.OnGenerateComplete(ctx, c.model, sheets, elapsed, err)

	if err != nil {
		c.logger.Error("generation failed", "model", c.model, "elapsed", elapsed.Round(time.Millisecond), "error", err)
		return nil, errors.Generation(err)
	}

	if dups := s.DuplicateIDs(); len(dups) > 0 {
		c.logger.Warn("suite has duplicate sheet ids; the first of each wins", "ids", dups)
	}
	c.logger.Info("generated suite", "project", s.ProjectName, "sheets", sheets, "elapsed", elapsed.Round(time.Millisecond))
	return s, nil
}

func (c *Client) generate(ctx context.Context, rawText string) (*suite.Suite, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(Prompt(rawText)), Config())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New(errors.ErrCodeInvalidSuite, "empty response")
	}
	body := resp.Text()
	if body == "" {
		return nil, errors.New(errors.ErrCodeInvalidSuite, "response has no text")
	}
	c.logger.Debug("model response", "bytes", len(body))
	return suite.Parse([]byte(body))
}

// =============================================================================
// Static
// =============================================================================

// Static is a Generator that returns a fixed result after an optional delay.
type Static struct {
	Suite *suite.Suite
	Err   error
	Delay time.Duration
}

// Generate validates rawText like [Client.Generate], waits for Delay, then
// returns Suite or Err. Errors that are not already GENERATION_FAILED are
// wrapped as such.
func (s Static) Generate(ctx context.Context, rawText string) (*suite.Suite, error) {
	if err := errors.ValidateContractText(rawText); err != nil {
		return nil, err
	}
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, errors.Generation(ctx.Err())
		case <-t.C:
		}
	}
	if s.Err != nil {
		if errors.Is(s.Err, errors.ErrCodeGeneration) {
			return nil, s.Err
		}
		return nil, errors.Generation(s.Err)
	}
	if s.Suite == nil {
		return nil, errors.Generation(errors.New(errors.ErrCodeInvalidSuite, "no suite configured"))
	}
	return s.Suite, nil
}
