package generate

import "google.golang.org/genai"

// ResponseSchema is the JSON schema the model must answer with. It mirrors
// the suite wire format: only projectName, sheets and the per-sheet id,
// title, type, explanation and data keys are required.
func ResponseSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

	node := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":     str(),
			"label":  str(),
			"detail": str(),
			"type":   str(),
			"role":   str(),
			"impact": str(),
			"value":  str(),
			"tags":   {Type: genai.TypeArray, Items: str()},
		},
		PropertyOrdering: []string{"id", "label", "detail", "type", "role", "impact", "value", "tags"},
	}

	connection := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"from":       str(),
			"to":         str(),
			"label":      str(),
			"isPositive": {Type: genai.TypeBoolean},
		},
		PropertyOrdering: []string{"from", "to", "label", "isPositive"},
	}

	sheet := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":          str(),
			"title":       str(),
			"type":        str(),
			"explanation": str(),
			"data": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"nodes":       {Type: genai.TypeArray, Items: node},
					"connections": {Type: genai.TypeArray, Items: connection},
				},
				PropertyOrdering: []string{"nodes", "connections"},
			},
		},
		Required:         []string{"id", "title", "type", "explanation", "data"},
		PropertyOrdering: []string{"id", "title", "type", "explanation", "data"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"projectName": str(),
			"sheets":      {Type: genai.TypeArray, Items: sheet},
		},
		Required:         []string{"projectName", "sheets"},
		PropertyOrdering: []string{"projectName", "sheets"},
	}
}
