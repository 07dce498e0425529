package server

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/matzehuels/legalcanvas/pkg/buildinfo"
	"github.com/matzehuels/legalcanvas/pkg/render/canvas"
	"github.com/matzehuels/legalcanvas/pkg/shell"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// UI copy.
const (
	emptyHeadline  = "Your contract deserves to be understood."
	emptyBody      = "Paste complex legal documents to turn them into a suite of visual sheets that explain the logic, the risks and the responsibilities."
	loadingTitle   = "Analyzing legal mechanics..."
	loadingCaption = "Architecting visual suite"
	noSheetsBody   = "The model returned no sheets for this contract. Try a more specific fragment."
)

var funcMap = template.FuncMap{
	"upper":      strings.ToUpper,
	"pathEscape": url.PathEscape,
}

// page is the data of the index template.
type page struct {
	Version string

	Input      string
	Processing bool
	CanSubmit  bool
	Message    string

	Project  string
	HasSuite bool
	Sheets   []sheetItem
	ActiveID string
	Canvas   template.HTML
	Export   bool

	EmptyHeadline  string
	EmptyBody      string
	LoadingTitle   string
	LoadingCaption string
	NoSheetsBody   string
}

// sheetItem is one entry of the sheet list.
type sheetItem struct {
	ID     string
	Title  string
	Type   string
	Alert  bool
	Active bool
}

func newPage(st shell.State, surface *canvas.Surface, exporting bool) page {
	p := page{
		Version:        buildinfo.Version,
		Input:          st.Input(),
		Processing:     st.Processing(),
		CanSubmit:      st.CanSubmit(),
		Message:        st.Message(),
		EmptyHeadline:  emptyHeadline,
		EmptyBody:      emptyBody,
		LoadingTitle:   loadingTitle,
		LoadingCaption: loadingCaption,
		NoSheetsBody:   noSheetsBody,
	}

	s := st.Suite()
	if s == nil {
		return p
	}
	p.HasSuite = true
	p.Project = s.ProjectName
	p.Export = !exporting
	p.ActiveID, _ = st.ActiveSheetID()

	for _, sh := range s.Sheets {
		p.Sheets = append(p.Sheets, sheetItem{
			ID:     sh.ID,
			Title:  sh.Title,
			Type:   string(sh.Type),
			Alert:  sh.Type == suite.TypeRiskHeatmap,
			Active: sh.ID == p.ActiveID,
		})
	}
	if surface != nil {
		// The canvas SVG escapes every piece of sheet text when it is built.
		p.Canvas = template.HTML(surface.SVG())
	}
	return p
}

// stateJSON is the wire form of shell.State.
type stateJSON struct {
	Phase         string  `json:"phase"`
	IsProcessing  bool    `json:"isProcessing"`
	Error         *string `json:"error"`
	ActiveSheetID *string `json:"activeSheetId"`
	ProjectName   *string `json:"projectName"`
	Sheets        int     `json:"sheets"`
	IsExporting   bool    `json:"isExporting"`
}

func newStateJSON(st shell.State, exporting bool) stateJSON {
	out := stateJSON{
		Phase:        st.Phase().String(),
		IsProcessing: st.Processing(),
		IsExporting:  exporting,
	}
	if msg := st.Message(); msg != "" {
		out.Error = &msg
	}
	if id, ok := st.ActiveSheetID(); ok {
		out.ActiveSheetID = &id
	}
	if s := st.Suite(); s != nil {
		name := s.ProjectName
		out.ProjectName = &name
		out.Sheets = len(s.Sheets)
	}
	return out
}
