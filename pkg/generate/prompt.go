package generate

import "strings"

// SystemInstruction frames every request.
const SystemInstruction = "Your output is a technical specification for a diagram. " +
	"Every node must have a clear purpose (trigger, condition, consequence). " +
	"Use precise legal language, structured for visual reading."

const promptHeader = `Act as a Senior Legal Designer. Your task is to break a contract of ten or more pages down into a suite of mechanical VISUAL EXPLANATIONS.

DO NOT SUMMARISE. DECOMPOSE THE MECHANICS.

For each visual sheet, identify the decision atoms:
1. 'logic-flow': show the logical chain. Nodes of type 'condition' (Was it paid?), 'action' (Deliver the service), 'penalty' (10% fine).
2. 'responsibility-matrix': focus on the human-system interaction. Who is the owner ('role') and which trigger activates their action.
3. 'risk-heatmap': find the legal traps. Grade each node's 'impact' as high, medium or low.
4. 'financial-mechanics': break down billing formulas, withholdings and flows.
5. 'timeline': order deadlines and notice periods.

Every sheet needs a unique id; connections reference node ids of the same sheet.

COMPLEX LEGAL TEXT:
`

// Prompt builds the user prompt for rawText.
func Prompt(rawText string) string {
	var b strings.Builder
	b.Grow(len(promptHeader) + len(rawText))
	b.WriteString(promptHeader)
	b.WriteString(rawText)
	return b.String()
}
