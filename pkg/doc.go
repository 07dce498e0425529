// Package pkg provides the core libraries of legalcanvas.
//
// # Overview
//
// legalcanvas turns contract text into a suite of visual explanation sheets.
// A language model does the legal reading; these packages describe, draw and
// export what it returns:
//
//  1. [suite] - The data contract: a project name and its sheets, each with
//     typed nodes and labelled connections.
//  2. [generate] - The Gemini client that enforces the suite response schema.
//  3. [render] - Sheet layouts (logic flow, risk heatmap, responsibility
//     matrix), the branded canvas around them and the connection graph.
//  4. [export] - PNG rasterization of a canvas at 2.5x on white.
//  5. [shell] - The session state machine driving generation, sheet
//     selection and export.
//  6. [pipeline] - Batch rendering of every sheet to files.
//
// # Data Flow
//
//	contract text
//	     ↓
//	[generate] (one model call, schema-checked)
//	     ↓
//	[suite] Suite
//	     ↓
//	[render/sheet] layout by sheet type → [render/canvas] Surface (SVG)
//	     ↓
//	[export] PNG
//
// # Quick Start
//
//	client, _ := generate.NewClient(ctx, generate.APIKeyFromEnv())
//	sh := shell.New(client, shell.WithExporter(export.New(export.RSVG{})))
//
//	st, err := sh.Generate(ctx, contractText)
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	    return
//	}
//	fmt.Println(st.Suite().ProjectName)
//
//	img, _ := sh.Export(ctx)
//	export.Save(".", img)
//
// # Supporting Packages
//
//   - [errors] - Structured errors with codes and user-facing messages.
//   - [observability] - Hook interfaces for generation, rendering, export and
//     state transitions, with a Prometheus implementation in
//     observability/prom.
//   - [buildinfo] - Version information injected at build time.
package pkg
