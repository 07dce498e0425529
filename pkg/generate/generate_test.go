package generate

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

const validSuite = `{
  "projectName": "Services Agreement",
  "sheets": [{
    "id": "s1", "title": "Late Payment", "type": "logic-flow",
    "explanation": "What happens when an invoice is not paid.",
    "data": {
      "nodes": [
        {"id": "n1", "label": "Payment Due", "detail": "Invoice issued", "type": "condition"},
        {"id": "n2", "label": "10% Penalty", "detail": "Charged monthly", "type": "penalty"}
      ],
      "connections": [{"from": "n1", "to": "n2", "label": "if unpaid"}]
    }
  }]
}`

type fakeModels struct {
	text  string
	err   error
	calls int

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model, f.contents, f.config = model, contents, config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}, Role: genai.RoleModel},
		}},
	}, nil
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestClientGenerate(t *testing.T) {
	fm := &fakeModels{text: validSuite}
	c := newClient(fm, WithLogger(quietLogger()))

	s, err := c.Generate(context.Background(), "Clause 1: Late payment incurs 10% penalty.")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if s.ProjectName != "Services Agreement" || len(s.Sheets) != 1 {
		t.Errorf("suite = %+v", s)
	}

	if fm.model != DefaultModel {
		t.Errorf("model = %q, want %q", fm.model, DefaultModel)
	}
	if fm.config.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q", fm.config.ResponseMIMEType)
	}
	if fm.config.ResponseSchema == nil || fm.config.SystemInstruction == nil {
		t.Error("config should declare a schema and a system instruction")
	}
	if len(fm.contents) != 1 || !strings.Contains(fm.contents[0].Parts[0].Text, "Late payment incurs 10% penalty.") {
		t.Error("prompt should embed the contract text")
	}
}

func TestClientGenerateFailures(t *testing.T) {
	tests := []struct {
		name string
		fm   *fakeModels
	}{
		{"transport error", &fakeModels{err: stderrors.New("connection reset")}},
		{"empty body", &fakeModels{text: ""}},
		{"not json", &fakeModels{text: "I cannot help with that."}},
		{"missing required field", &fakeModels{text: `{"projectName": "p"}`}},
		{"sheet missing data", &fakeModels{text: `{"projectName": "p", "sheets": [{"id": "a", "title": "t", "type": "logic-flow", "explanation": "e"}]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(tt.fm, WithLogger(quietLogger()))
			s, err := c.Generate(context.Background(), "Clause 1.")
			if s != nil {
				t.Errorf("suite = %+v, want nil", s)
			}
			if !errors.Is(err, errors.ErrCodeGeneration) {
				t.Fatalf("error = %v, want GENERATION_FAILED", err)
			}
			if errors.UserMessage(err) != errors.MsgGeneration {
				t.Errorf("UserMessage = %q, want fixed message", errors.UserMessage(err))
			}
			if tt.fm.calls != 1 {
				t.Errorf("calls = %d, want exactly 1 (no retry)", tt.fm.calls)
			}
		})
	}
}

func TestClientRejectsBlankInput(t *testing.T) {
	fm := &fakeModels{text: validSuite}
	c := newClient(fm, WithLogger(quietLogger()))

	for _, in := range []string{"", "   ", "\n\t"} {
		if _, err := c.Generate(context.Background(), in); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Generate(%q) error = %v, want INVALID_INPUT", in, err)
		}
	}
	if fm.calls != 0 {
		t.Errorf("model called %d times for blank input", fm.calls)
	}
}

func TestWithModel(t *testing.T) {
	if got := newClient(&fakeModels{}, WithModel("gemini-2.5-flash")).Model(); got != "gemini-2.5-flash" {
		t.Errorf("Model() = %q", got)
	}
	if got := newClient(&fakeModels{}, WithModel("")).Model(); got != DefaultModel {
		t.Errorf("empty WithModel should keep default, got %q", got)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), ""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("NewClient(\"\") error = %v, want INVALID_CONFIG", err)
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvLegacyAPIKey, "legacy")
	if got := APIKeyFromEnv(); got != "legacy" {
		t.Errorf("APIKeyFromEnv() = %q, want legacy fallback", got)
	}
	t.Setenv(EnvAPIKey, "primary")
	if got := APIKeyFromEnv(); got != "primary" {
		t.Errorf("APIKeyFromEnv() = %q, want primary", got)
	}
}

func TestResponseSchemaRequired(t *testing.T) {
	s := ResponseSchema()
	if strings.Join(s.Required, ",") != "projectName,sheets" {
		t.Errorf("root required = %v", s.Required)
	}
	sheet := s.Properties["sheets"].Items
	if strings.Join(sheet.Required, ",") != "id,title,type,explanation,data" {
		t.Errorf("sheet required = %v", sheet.Required)
	}
	data := sheet.Properties["data"]
	if data.Properties["nodes"].Items.Properties["tags"].Type != genai.TypeArray {
		t.Error("node tags should be an array")
	}
	if data.Properties["connections"].Items.Properties["isPositive"].Type != genai.TypeBoolean {
		t.Error("isPositive should be boolean")
	}
}

func TestStatic(t *testing.T) {
	want := &suite.Suite{ProjectName: "p", Sheets: []suite.Sheet{}}

	got, err := Static{Suite: want}.Generate(context.Background(), "text")
	if err != nil || got != want {
		t.Errorf("Static.Generate() = %v, %v", got, err)
	}

	_, err = Static{Err: stderrors.New("offline")}.Generate(context.Background(), "text")
	if !errors.Is(err, errors.ErrCodeGeneration) {
		t.Errorf("Static error = %v, want GENERATION_FAILED", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Static{Suite: want, Delay: time.Hour}.Generate(ctx, "text")
	if !errors.Is(err, errors.ErrCodeGeneration) {
		t.Errorf("cancelled Static error = %v, want GENERATION_FAILED", err)
	}

	if _, err := (Static{Suite: want}).Generate(context.Background(), " "); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("blank input error = %v, want INVALID_INPUT", err)
	}
}

func TestFunc(t *testing.T) {
	var g Generator = Func(func(context.Context, string) (*suite.Suite, error) {
		return &suite.Suite{ProjectName: "f"}, nil
	})
	s, err := g.Generate(context.Background(), "x")
	if err != nil || s.ProjectName != "f" {
		t.Errorf("Func.Generate() = %v, %v", s, err)
	}
}
