package suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/legalcanvas/pkg/errors"
)

// wireSuite and wireSheet mirror Suite and Sheet with pointer fields so that
// absent required keys can be told apart from empty values.
type wireSuite struct {
	ProjectName *string      `json:"projectName"`
	Sheets      *[]wireSheet `json:"sheets"`
}

type wireSheet struct {
	ID          *string    `json:"id"`
	Title       *string    `json:"title"`
	Type        *SheetType `json:"type"`
	Explanation *string    `json:"explanation"`
	Data        *Data      `json:"data"`
}

// Parse decodes a JSON suite and checks its required fields.
//
// Parse returns an *errors.Error with code INVALID_SUITE if data is not
// valid JSON or a required field is absent. Optional node and connection
// fields are never validated.
func Parse(data []byte) (*Suite, error) {
	var w wireSuite
	if err := json.Unmarshal(bytes.TrimSpace(data), &w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSuite, err, "suite is not valid JSON")
	}
	return w.toSuite()
}

// Decode reads all of r and parses it with [Parse].
// Decode does not close r.
func Decode(r io.Reader) (*Suite, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	return Parse(data)
}

func (w wireSuite) toSuite() (*Suite, error) {
	if w.ProjectName == nil {
		return nil, missing("projectName")
	}
	if w.Sheets == nil {
		return nil, missing("sheets")
	}

	s := &Suite{
		ProjectName: *w.ProjectName,
		Sheets:      make([]Sheet, 0, len(*w.Sheets)),
	}
	for i, ws := range *w.Sheets {
		sh, err := ws.toSheet(i)
		if err != nil {
			return nil, err
		}
		s.Sheets = append(s.Sheets, sh)
	}
	return s, nil
}

func (w wireSheet) toSheet(idx int) (Sheet, error) {
	field := func(name string) error { return missing(fmt.Sprintf("sheets[%d].%s", idx, name)) }
	switch {
	case w.ID == nil:
		return Sheet{}, field("id")
	case w.Title == nil:
		return Sheet{}, field("title")
	case w.Type == nil:
		return Sheet{}, field("type")
	case w.Explanation == nil:
		return Sheet{}, field("explanation")
	case w.Data == nil:
		return Sheet{}, field("data")
	}
	return Sheet{
		ID:          *w.ID,
		Title:       *w.Title,
		Type:        *w.Type,
		Explanation: *w.Explanation,
		Data:        *w.Data,
	}, nil
}

func missing(field string) error {
	return errors.New(errors.ErrCodeInvalidSuite, "required field %s is missing", field)
}

// WriteJSON encodes s as indented JSON and writes it to w.
// The output can be re-read with [Decode] for round-trip processing.
func WriteJSON(w io.Writer, s *Suite) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode suite: %w", err)
	}
	return nil
}

// ReadFile reads and parses the suite stored at path.
func ReadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile writes s to path as indented JSON, replacing any existing file.
func WriteFile(path string, s *Suite) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
