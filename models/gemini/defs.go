package gemini

// Schema is the field specification sent to the API for schema-mode calls.
// It follows the responseSchema subset of the generativelanguage REST API:
// type, properties, items, enum, required.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// InlineData is a base64 payload with a declared MIME type.
type InlineData struct {
	MimeType string `json:"mime_type,omitempty"`
	Data     string `json:"data,omitempty"`
}

// Prompt is one model invocation's input: instruction text, an optional
// inline attachment, and an optional system instruction.
type Prompt struct {
	Text   string
	Image  *InlineData
	System string
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type requestContent struct {
	Role  string        `json:"role"`
	Parts []requestPart `json:"parts"`
}

type systemInstruction struct {
	Parts []requestPart `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type requestBody struct {
	Contents          []requestContent   `json:"contents"`
	SystemInstruction *systemInstruction `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig  `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates    []candidate   `json:"candidates"`
	UsageMetadata usageMetadata `json:"usageMetadata"`
	ModelVersion  string        `json:"modelVersion"`
}

type candidate struct {
	Content      responseContent `json:"content"`
	FinishReason string          `json:"finishReason,omitempty"`
}

type responseContent struct {
	Parts []responsePart `json:"parts"`
	Role  string         `json:"role"`
}

type responsePart struct {
	Text *string `json:"text,omitempty"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

func (r *geminiResponse) text() string {
	var out string
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != nil {
				out += *part.Text
			}
		}
	}
	return out
}
