package prompts

import "carebridge-backend/models/gemini"

// SymptomAnalysisSchema constrains the structured diagnosis response.
var SymptomAnalysisSchema = &gemini.Schema{
	Type: "object",
	Properties: map[string]*gemini.Schema{
		"conditions": {
			Type: "array",
			Items: &gemini.Schema{
				Type: "object",
				Properties: map[string]*gemini.Schema{
					"condition":       {Type: "string"},
					"probability":     {Type: "number", Description: "Probability percentage from 0 to 100"},
					"severity":        {Type: "string", Enum: []string{"low", "medium", "high"}},
					"description":     {Type: "string"},
					"recommendations": {Type: "array", Items: &gemini.Schema{Type: "string"}},
				},
				Required: []string{"condition", "probability", "severity", "description", "recommendations"},
			},
		},
		"urgencyLevel":  {Type: "string", Enum: []string{"routine", "soon", "urgent", "emergency"}},
		"generalAdvice": {Type: "string"},
	},
	Required: []string{"conditions", "urgencyLevel", "generalAdvice"},
}

// DiseaseDetectionSchema constrains the imaging analysis response.
var DiseaseDetectionSchema = &gemini.Schema{
	Type: "object",
	Properties: map[string]*gemini.Schema{
		"diagnosis":  {Type: "string"},
		"confidence": {Type: "number", Description: "Confidence level from 0 to 100"},
		"severity":   {Type: "string", Enum: []string{"Mild", "Moderate", "Severe", "Critical"}},
		"findings": {
			Type: "array",
			Items: &gemini.Schema{
				Type: "object",
				Properties: map[string]*gemini.Schema{
					"finding":      {Type: "string"},
					"location":     {Type: "string"},
					"significance": {Type: "string"},
				},
				Required: []string{"finding", "location", "significance"},
			},
		},
		"recommendations":       {Type: "array", Items: &gemini.Schema{Type: "string"}},
		"followUp":              {Type: "string"},
		"differentialDiagnosis": {Type: "array", Items: &gemini.Schema{Type: "string"}},
	},
	Required: []string{"diagnosis", "confidence", "severity", "findings", "recommendations", "followUp", "differentialDiagnosis"},
}

// DrugInteractionSchema constrains the interaction-check response.
var DrugInteractionSchema = &gemini.Schema{
	Type: "object",
	Properties: map[string]*gemini.Schema{
		"hasInteraction": {Type: "boolean"},
		"severity":       {Type: "string", Enum: []string{"none", "mild", "moderate", "severe", "contraindicated"}},
		"interactions": {
			Type: "array",
			Items: &gemini.Schema{
				Type: "object",
				Properties: map[string]*gemini.Schema{
					"drugs":           {Type: "array", Items: &gemini.Schema{Type: "string"}},
					"type":            {Type: "string"},
					"mechanism":       {Type: "string"},
					"clinicalEffects": {Type: "string"},
					"management":      {Type: "string"},
				},
				Required: []string{"drugs", "type", "mechanism", "clinicalEffects", "management"},
			},
		},
		"recommendations": {Type: "array", Items: &gemini.Schema{Type: "string"}},
		"alternatives":    {Type: "array", Items: &gemini.Schema{Type: "string"}},
		"monitoring":      {Type: "string"},
	},
	Required: []string{"hasInteraction", "severity", "interactions", "recommendations", "alternatives", "monitoring"},
}
