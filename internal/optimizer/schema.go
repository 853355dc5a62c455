package optimizer

import "github.com/google/generative-ai-go/genai"

// ResponseSchema is the structured-output declaration sent with every request.
// It mirrors internal/schemas/optimization_result.schema.json.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"refinedScript": {
				Type:        genai.TypeArray,
				Description: "A shot-by-shot breakdown of the script for 1:00-1:30 min duration.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"number": {Type: genai.TypeInteger},
						"visual": {Type: genai.TypeString, Description: "Description of the visual action"},
						"audio":  {Type: genai.TypeString, Description: "Dialogue or voiceover text"},
					},
					Required: []string{"number", "visual", "audio"},
				},
			},
			"titles": {
				Type:        genai.TypeArray,
				Description: "Top 5 SEO optimized titles with hashtags.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"description": {
				Type:        genai.TypeString,
				Description: "Full SEO optimized description with 10 hashtags.",
			},
			"editingGuide": {
				Type:        genai.TypeString,
				Description: "Expert tips on how to edit the video.",
			},
		},
		Required: []string{"refinedScript", "titles", "description", "editingGuide"},
	}
}
