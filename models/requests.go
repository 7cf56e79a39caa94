package models

// SymptomAnalysisRequest asks for a structured differential over free-text symptoms.
type SymptomAnalysisRequest struct {
	Symptoms string `json:"symptoms"`
}

// DiseaseDetectionRequest carries a medical image as a base64 data URI.
type DiseaseDetectionRequest struct {
	Image     string `json:"image"`
	ImageType string `json:"imageType,omitempty"`
}

// DrugInteractionRequest lists medication names to cross-check. At least two
// are required before any model call is made.
type DrugInteractionRequest struct {
	Medications []string `json:"medications"`
}

// HealthRiskRequest carries patient lifestyle data. The numeric fields arrive
// loosely typed from the form layer (strings or numbers) and are coerced when
// the prompt is built.
type HealthRiskRequest struct {
	Age      any    `json:"age"`
	Weight   any    `json:"weight"`
	Height   any    `json:"height"`
	Smoking  string `json:"smoking"`
	Exercise string `json:"exercise"`
	Diet     string `json:"diet"`
}

// TelemedicineRequest is one chat turn in a virtual consultation.
type TelemedicineRequest struct {
	Message        string         `json:"message"`
	SessionID      string         `json:"sessionId"`
	PatientContext map[string]any `json:"patientContext,omitempty"`
}
