package suite

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/legalcanvas/pkg/errors"
)

const latePayment = `{
  "projectName": "Services Agreement",
  "sheets": [{
    "id": "s1",
    "title": "Late Payment",
    "type": "logic-flow",
    "explanation": "What happens when an invoice is not paid.",
    "data": {
      "nodes": [
        {"id": "n1", "label": "Payment Due", "detail": "Invoice issued", "type": "condition"},
        {"id": "n2", "label": "10% Penalty", "detail": "Charged monthly", "type": "penalty", "tags": ["fee"]}
      ],
      "connections": [{"from": "n1", "to": "n2", "label": "if unpaid", "isPositive": false}]
    }
  }]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(latePayment))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.ProjectName != "Services Agreement" {
		t.Errorf("ProjectName = %q, want %q", s.ProjectName, "Services Agreement")
	}
	if len(s.Sheets) != 1 {
		t.Fatalf("len(Sheets) = %d, want 1", len(s.Sheets))
	}
	sh := s.Sheets[0]
	if sh.Type != TypeLogicFlow {
		t.Errorf("Type = %q, want %q", sh.Type, TypeLogicFlow)
	}
	if len(sh.Data.Nodes) != 2 || sh.Data.Nodes[1].Type != NodePenalty {
		t.Errorf("Nodes = %+v", sh.Data.Nodes)
	}
	if len(sh.Data.Connections) != 1 {
		t.Fatalf("len(Connections) = %d, want 1", len(sh.Data.Connections))
	}
	if c := sh.Data.Connections[0]; c.IsPositive == nil || *c.IsPositive {
		t.Errorf("IsPositive = %v, want pointer to false", c.IsPositive)
	}
}

func TestParseRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty sheets", `{"projectName": "p", "sheets": []}`, false},
		{"empty explanation is present", `{"projectName": "p", "sheets": [{"id": "a", "title": "t", "type": "timeline", "explanation": "", "data": {}}]}`, false},
		{"unknown type kept", `{"projectName": "p", "sheets": [{"id": "a", "title": "t", "type": "org-chart", "explanation": "e", "data": {"nodes": []}}]}`, false},

		{"not json", `Sorry, I cannot help with that.`, true},
		{"empty body", ``, true},
		{"missing projectName", `{"sheets": []}`, true},
		{"missing sheets", `{"projectName": "p"}`, true},
		{"null sheets", `{"projectName": "p", "sheets": null}`, true},
		{"missing id", `{"projectName": "p", "sheets": [{"title": "t", "type": "logic-flow", "explanation": "e", "data": {}}]}`, true},
		{"missing title", `{"projectName": "p", "sheets": [{"id": "a", "type": "logic-flow", "explanation": "e", "data": {}}]}`, true},
		{"missing type", `{"projectName": "p", "sheets": [{"id": "a", "title": "t", "explanation": "e", "data": {}}]}`, true},
		{"missing explanation", `{"projectName": "p", "sheets": [{"id": "a", "title": "t", "type": "logic-flow", "data": {}}]}`, true},
		{"missing data", `{"projectName": "p", "sheets": [{"id": "a", "title": "t", "type": "logic-flow", "explanation": "e"}]}`, true},
		{"null data", `{"projectName": "p", "sheets": [{"id": "a", "title": "t", "type": "logic-flow", "explanation": "e", "data": null}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSuite) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSuite)
			}
		})
	}
}

func TestParseMissingFieldNamesPath(t *testing.T) {
	_, err := Parse([]byte(`{"projectName": "p", "sheets": [{"id": "a", "title": "t", "type": "x", "explanation": "e", "data": {}}, {"id": "b"}]}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "sheets[1].title") {
		t.Errorf("error = %q, want it to name sheets[1].title", err)
	}
}

func TestConnectionsAbsentVersusEmpty(t *testing.T) {
	s, err := Parse([]byte(`{"projectName": "p", "sheets": [
		{"id": "a", "title": "t", "type": "logic-flow", "explanation": "e", "data": {"nodes": []}},
		{"id": "b", "title": "t", "type": "logic-flow", "explanation": "e", "data": {"nodes": [], "connections": []}}
	]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Sheets[0].Data.Connections != nil {
		t.Error("absent connections should decode as nil")
	}
	if s.Sheets[1].Data.Connections == nil {
		t.Error("empty connections should decode as non-nil")
	}
}

func TestSheetLookup(t *testing.T) {
	s := &Suite{Sheets: []Sheet{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
		{ID: "a", Title: "duplicate"},
	}}

	sh, ok := s.Sheet("a")
	if !ok || sh.Title != "first" {
		t.Errorf("Sheet(a) = %+v, %v; want first match", sh, ok)
	}
	if _, ok := s.Sheet("missing"); ok {
		t.Error("Sheet(missing) should not be found")
	}
	if got := s.FirstSheetID(); got != "a" {
		t.Errorf("FirstSheetID() = %q, want %q", got, "a")
	}
	if got := s.DuplicateIDs(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("DuplicateIDs() = %v, want [a]", got)
	}

	var nilSuite *Suite
	if _, ok := nilSuite.Sheet("a"); ok {
		t.Error("nil suite lookup should fail")
	}
	if got := (&Suite{}).FirstSheetID(); got != "" {
		t.Errorf("FirstSheetID() on empty suite = %q, want empty", got)
	}
}

func TestSheetTypeLabel(t *testing.T) {
	tests := []struct {
		in    SheetType
		want  string
		known bool
	}{
		{TypeLogicFlow, "logic flow", true},
		{TypeResponsibilityMatrix, "responsibility matrix", true},
		{TypeRiskHeatmap, "risk heatmap", true},
		{TypeTimeline, "timeline", true},
		{SheetType("a-b-c"), "a b-c", false},
	}
	for _, tt := range tests {
		if got := tt.in.Label(); got != tt.want {
			t.Errorf("%q.Label() = %q, want %q", tt.in, got, tt.want)
		}
		if got := tt.in.Known(); got != tt.known {
			t.Errorf("%q.Known() = %v, want %v", tt.in, got, tt.known)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	orig, err := Parse([]byte(latePayment))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, orig); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, orig)
	}

	path := filepath.Join(t.TempDir(), "suite.json")
	if err := WriteFile(path, orig); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	fromFile, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !reflect.DeepEqual(orig, fromFile) {
		t.Error("file round trip mismatch")
	}
}
