package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/legalcanvas/pkg/render/styles"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node detail, role and impact under the label.
	Detailed bool
}

// ToDOT converts the nodes and connections of s to Graphviz DOT. Node order
// and connection order follow the sheet.
func ToDOT(s suite.Sheet, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontname=%q, fontsize=14, margin=\"0.2,0.1\"];\n", "Helvetica")
	fmt.Fprintf(&buf, "  edge [fontname=%q, fontsize=11, color=%q];\n", "Helvetica", styles.Slate400)
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(s.Data.Nodes))
	for _, n := range s.Data.Nodes {
		if known[n.ID] {
			continue
		}
		known[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	dangling := map[string]bool{}
	for _, c := range s.Data.Connections {
		for _, id := range []string{c.From, c.To} {
			if known[id] || dangling[id] {
				continue
			}
			dangling[id] = true
			fmt.Fprintf(&buf, "  %q [label=%q, shape=plaintext, style=dashed, fillcolor=none];\n", id, id)
		}
	}

	if len(s.Data.Connections) > 0 {
		buf.WriteString("\n")
	}
	for _, c := range s.Data.Connections {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.From, c.To, strings.Join(edgeAttrs(c), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n suite.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	parts := []string{label}
	if n.Detail != "" {
		parts = append(parts, n.Detail)
	}
	if n.Role != "" {
		parts = append(parts, "role: "+n.Role)
	}
	if n.Impact != "" {
		parts = append(parts, "impact: "+string(n.Impact))
	}
	return strings.Join(parts, "\n")
}

func nodeAttrs(n suite.Node, detailed bool) []string {
	b := styles.NodeBadge(string(n.Type))
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(n, detailed)),
		fmt.Sprintf("fillcolor=%q", b.Fill),
		fmt.Sprintf("color=%q", b.Stroke),
		fmt.Sprintf("fontcolor=%q", b.Text),
	}
}

func edgeAttrs(c suite.Connection) []string {
	attrs := []string{fmt.Sprintf("label=%q", c.Label)}
	if c.IsPositive != nil {
		color := styles.Red500
		if *c.IsPositive {
			color = styles.Green700
		}
		attrs = append(attrs, fmt.Sprintf("color=%q", color), fmt.Sprintf("fontcolor=%q", color))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the graph scales like the canvas.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
