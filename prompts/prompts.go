// Package prompts builds the instruction text and response schemas for every
// model invocation. Builders are pure: same input, same prompt.
package prompts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"carebridge-backend/models"
	"carebridge-backend/models/gemini"
)

// SymptomAnalysis builds the structured-diagnosis prompt.
func SymptomAnalysis(symptoms string) gemini.Prompt {
	return gemini.Prompt{
		Text: fmt.Sprintf(`You are an expert medical AI assistant. Analyze the following symptoms and provide a structured diagnosis.

Symptoms: %s

Provide:
1. Top 5 possible conditions with probability percentages (0-100)
2. Severity level for each (low/medium/high)
3. Brief description of each condition
4. Specific recommendations for each condition
5. Overall urgency level (routine/soon/urgent/emergency)
6. General medical advice

Be accurate, evidence-based, and include appropriate medical disclaimers in recommendations.`, symptoms),
	}
}

// DiseaseDetection builds the imaging-analysis prompt. The image arrives as
// base64, optionally wrapped in a data URL; the wrapper's MIME type wins over
// the default.
func DiseaseDetection(image, imageType string) gemini.Prompt {
	if imageType == "" {
		imageType = "X-ray/CT/MRI"
	}

	mimeType, data := splitDataURL(image)
	return gemini.Prompt{
		Text: fmt.Sprintf(`You are an expert radiologist and medical imaging specialist. Analyze this medical image (%s) and provide a detailed structured analysis.

Provide:
1. Primary diagnosis with confidence level (0-100)
2. Severity assessment
3. Specific findings with anatomical locations
4. Clinical recommendations
5. Follow-up care instructions
6. Differential diagnoses to consider

Be precise, use medical terminology, and provide actionable insights.`, imageType),
		Image: &gemini.InlineData{MimeType: mimeType, Data: data},
	}
}

// DrugInteraction builds the interaction-check prompt.
func DrugInteraction(medications []string) gemini.Prompt {
	return gemini.Prompt{
		Text: fmt.Sprintf(`You are a clinical pharmacologist expert. Analyze potential drug interactions between these medications:

Medications: %s

Provide:
1. Whether interactions exist
2. Severity level of interactions
3. Detailed interaction information including:
   - Which drugs interact
   - Type of interaction
   - Mechanism of interaction
   - Clinical effects
   - Management strategies
4. Clinical recommendations
5. Alternative medication suggestions if needed
6. Monitoring requirements

Be thorough and evidence-based. Include all clinically significant interactions.`, strings.Join(medications, ", ")),
	}
}

// HealthRisk builds the risk-assessment prompt. BMI is computed here from
// weight and height; unparsable values degrade to NaN in the prompt text
// rather than failing the request.
func HealthRisk(req *models.HealthRiskRequest) gemini.Prompt {
	weight := coerceNumber(req.Weight)
	height := coerceNumber(req.Height)

	heightInMeters := height / 100
	bmi := weight / (heightInMeters * heightInMeters)

	return gemini.Prompt{
		Text: fmt.Sprintf(`You are a medical AI assistant. Based on the following patient data, provide a detailed health risk assessment:

Patient Data:
- Age: %s years
- Weight: %s kg
- Height: %s cm
- BMI: %s
- Smoking Status: %s
- Exercise Frequency: %s
- Diet Quality: %s

Please provide:
1. Diabetes risk percentage (0-100)
2. Heart attack risk percentage (0-100)
3. Stroke risk percentage (0-100)
4. Detailed explanation for each risk factor
5. Personalized recommendations (at least 5 specific recommendations)

Format your response as JSON with this structure:
{
  "diabetes": number,
  "heartAttack": number,
  "stroke": number,
  "explanations": {
    "diabetes": "string",
    "heartAttack": "string",
    "stroke": "string"
  },
  "recommendations": ["string", "string", ...]
}`,
			formatValue(req.Age), formatValue(req.Weight), formatValue(req.Height),
			formatNumber(bmi, 1), req.Smoking, req.Exercise, req.Diet),
	}
}

// SummarizeReport builds the report-summarization prompt around an uploaded
// report image.
func SummarizeReport(mimeType, base64Data string) gemini.Prompt {
	return gemini.Prompt{
		Text: `You are a medical AI assistant. Analyze this medical report image and provide a comprehensive summary.

Extract and provide:
1. Patient name (if visible)
2. Report date
3. Key findings (list all important test results and measurements)
4. Primary diagnosis or assessment
5. Medications mentioned (if any)
6. Recommendations or follow-up instructions

Format your response as JSON with this structure:
{
  "patientName": "string or 'Not specified'",
  "date": "string",
  "keyFindings": ["string", "string", ...],
  "diagnosis": "string",
  "medications": ["string", ...],
  "recommendations": ["string", "string", ...]
}

Provide clear, patient-friendly language. If information is not available in the report, indicate "Not specified".`,
		Image: &gemini.InlineData{MimeType: mimeType, Data: base64Data},
	}
}

// ClinicalNotes is the instruction sent alongside an audio recording of a
// doctor-patient conversation.
func ClinicalNotes() string {
	return `You are a medical AI assistant. Listen to this doctor-patient conversation and create structured clinical notes.

Extract and structure:
1. Patient name (use placeholder if not mentioned)
2. Visit date (today's date)
3. Chief complaint
4. List of symptoms
5. Diagnosis
6. Medications prescribed with dosage instructions
7. Follow-up plan

Format as JSON:
{
  "patientName": "string",
  "date": "string",
  "chiefComplaint": "string",
  "symptoms": ["string", ...],
  "diagnosis": "string",
  "medications": ["string with dosage", ...],
  "followUp": "string"
}`
}

// TelemedicineSystem is the consultation persona for the streaming chat.
const TelemedicineSystem = `You are an empathetic and knowledgeable telemedicine doctor. You are conducting a virtual consultation.

Guidelines:
- Be professional, caring, and thorough
- Ask relevant follow-up questions
- Provide clear medical advice
- Remember the conversation context
- Suggest when in-person care is needed
- Use simple language while being medically accurate
- Always include appropriate disclaimers

Remember all previous messages in this consultation.`

// PatientContextTurn renders a patient-context payload as the conversation's
// opening system turn.
func PatientContextTurn(patientContext map[string]any) (string, error) {
	encoded, err := json.Marshal(patientContext)
	if err != nil {
		return "", fmt.Errorf("failed to encode patient context: %w", err)
	}
	return "Patient Context: " + string(encoded), nil
}

// splitDataURL separates a data URL into its MIME type and base64 payload.
// Plain base64 input passes through with a JPEG default.
func splitDataURL(image string) (mimeType, data string) {
	mimeType = "image/jpeg"
	data = image

	if !strings.HasPrefix(image, "data:") {
		return
	}
	rest := image[len("data:"):]
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return
	}
	if mt := rest[:semi]; mt != "" {
		mimeType = mt
	}
	data = rest[semi+len(";base64,"):]
	return
}

// coerceNumber extracts a float from the loosely typed intake fields. Numbers
// pass through; numeric strings are parsed; anything else is NaN.
func coerceNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// formatValue renders a loosely typed field for prompt text.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatNumber(val, -1)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber renders a float with the given decimal places, or "NaN" when
// the value is not finite.
func formatNumber(f float64, decimals int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}
