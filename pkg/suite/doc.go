// Package suite defines the data contract for a contract decomposition result.
//
// A [Suite] is what the generation client returns for one submitted
// contract: a project name plus an ordered list of [Sheet] values. Each
// sheet declares a diagram [SheetType] (the discriminant used by the
// renderer dispatch) and carries its [Data]: an ordered list of [Node]
// values and, optionally, labelled [Connection] values between node ids.
//
// # Wire Format
//
// The JSON shape mirrors the response schema declared to the model:
//
//	{
//	  "projectName": "Master Services Agreement",
//	  "sheets": [{
//	    "id": "s1",
//	    "title": "Late Payment",
//	    "type": "logic-flow",
//	    "explanation": "What happens when an invoice is not paid.",
//	    "data": {
//	      "nodes": [{"id": "n1", "label": "Payment Due", "detail": "...", "type": "condition"}],
//	      "connections": [{"from": "n1", "to": "n2", "label": "if unpaid"}]
//	    }
//	  }]
//	}
//
// # Validation
//
// [Parse] and [Decode] check only the required fields (projectName, sheets,
// and per sheet id, title, type, explanation, data). Everything else is
// optional and renderer-specific: absence is handled by rendering defaults,
// never by an error. Unknown enum strings are kept verbatim so the renderer
// can apply its fallback.
//
// Connection endpoints are expected to reference node ids of the same sheet,
// but this is not enforced.
//
// # Ownership
//
// A Suite is replaced wholesale on each successful generation and is never
// mutated afterwards. Renderers receive values scoped to a single sheet.
package suite
