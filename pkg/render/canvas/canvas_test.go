package canvas

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/legalcanvas/pkg/observability"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

func testSheet(id, title string) suite.Sheet {
	return suite.Sheet{
		ID:          id,
		Title:       title,
		Type:        suite.TypeLogicFlow,
		Explanation: "Payment terms & late fees",
		Data: suite.Data{Nodes: []suite.Node{
			{ID: "n1", Label: "Payment Due", Detail: "Invoice issued"},
			{ID: "n2", Label: "10% Penalty", Detail: "Charged monthly"},
		}},
	}
}

func TestBuildChrome(t *testing.T) {
	surf := Build(testSheet("s1", "Late <Payment>"))
	svg := string(surf.SVG())

	wants := []string{
		`id="legal-design-canvas"`,
		"<title>Late &lt;Payment&gt;</title>",
		">" + BrandMark + "<",
		strings.ToUpper(SheetCaption),
		strings.ToUpper(ProtocolCaption),
		"LOGIC FLOW",
		"&#34;Payment terms &amp; late fees&#34;",
		strings.ToUpper(FooterLine),
		`id="canvas-body"`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("canvas SVG missing %q", want)
		}
	}
	if got := strings.Count(svg, `class="footer-dot"`); got != FooterDots {
		t.Errorf("footer dots = %d, want %d", got, FooterDots)
	}
}

func TestSurfaceAccessors(t *testing.T) {
	surf := Build(testSheet("s1", "Fees"), WithWidth(1000))

	if surf.RootID() != RootID {
		t.Errorf("RootID() = %q, want %q", surf.RootID(), RootID)
	}
	if surf.SheetID() != "s1" || surf.Title() != "Fees" {
		t.Errorf("SheetID(), Title() = %q, %q", surf.SheetID(), surf.Title())
	}
	w, h := surf.Size()
	if w != 1000 {
		t.Errorf("width = %v, want 1000", w)
	}
	if h < MinHeight {
		t.Errorf("height = %v, want >= %v", h, MinHeight)
	}
}

func TestSurfaceSVGIsCopy(t *testing.T) {
	surf := Build(testSheet("s1", "Fees"))
	a := surf.SVG()
	a[0] = 'X'
	if b := surf.SVG(); b[0] != '<' {
		t.Error("mutating SVG() result changed the surface")
	}
}

func TestTallBodyGrowsCanvas(t *testing.T) {
	s := testSheet("s1", "Many")
	for i := range 30 {
		s.Data.Nodes = append(s.Data.Nodes, suite.Node{ID: string(rune('a' + i)), Label: "Clause", Detail: "Detail"})
	}
	_, short := Build(testSheet("s1", "Few")).Size()
	_, tall := Build(s).Size()
	if tall <= short {
		t.Errorf("tall canvas height %v should exceed %v", tall, short)
	}
}

func TestComposerSingleCanvas(t *testing.T) {
	c := NewComposer()
	if c.Current() != nil {
		t.Fatal("new composer should have no canvas")
	}

	first := c.Compose(testSheet("s1", "First"))
	if c.Current() != first {
		t.Error("Current() should return the composed surface")
	}

	second := c.Compose(testSheet("s2", "Second"))
	if c.Current() != second || c.Current().SheetID() != "s2" {
		t.Error("Compose should replace the previous surface")
	}

	c.Reset()
	if c.Current() != nil {
		t.Error("Reset() should unmount the surface")
	}
}

func TestComposerConcurrent(t *testing.T) {
	c := NewComposer()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Compose(testSheet(string(rune('a'+i)), "Concurrent"))
			_ = c.Current()
		}()
	}
	wg.Wait()
	if c.Current() == nil {
		t.Error("expected a current surface")
	}
}

type recordingRender struct {
	observability.NoopRenderHooks
	mu      sync.Mutex
	layouts []string
}

func (r *recordingRender) OnCompose(_, layout string, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layouts = append(r.layouts, layout)
}

func TestBuildEmitsRenderHook(t *testing.T) {
	rec := &recordingRender{}
	observability.SetRenderHooks(rec)
	defer observability.Reset()

	s := testSheet("s1", "Timeline")
	s.Type = suite.TypeTimeline
	Build(s)

	if len(rec.layouts) != 1 || rec.layouts[0] != "logic-flow" {
		t.Errorf("layouts = %v, want [logic-flow]", rec.layouts)
	}
}
