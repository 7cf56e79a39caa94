package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SymptomCondition is one candidate condition in a symptom analysis.
type SymptomCondition struct {
	Condition       string   `json:"condition" validate:"required"`
	Probability     float64  `json:"probability" validate:"gte=0,lte=100"`
	Severity        string   `json:"severity" validate:"oneof=low medium high"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// SymptomAnalysisResult is the structured diagnosis for a symptom description.
type SymptomAnalysisResult struct {
	Conditions    []SymptomCondition `json:"conditions" validate:"dive"`
	UrgencyLevel  string             `json:"urgencyLevel" validate:"oneof=routine soon urgent emergency"`
	GeneralAdvice string             `json:"generalAdvice"`
}

// ImagingFinding is a single observation in a medical image analysis.
type ImagingFinding struct {
	Finding      string `json:"finding"`
	Location     string `json:"location"`
	Significance string `json:"significance"`
}

// DiseaseDetectionResult is the structured read of a medical image.
type DiseaseDetectionResult struct {
	Diagnosis             string           `json:"diagnosis" validate:"required"`
	Confidence            float64          `json:"confidence" validate:"gte=0,lte=100"`
	Severity              string           `json:"severity" validate:"oneof=Mild Moderate Severe Critical"`
	Findings              []ImagingFinding `json:"findings"`
	Recommendations       []string         `json:"recommendations"`
	FollowUp              string           `json:"followUp"`
	DifferentialDiagnosis []string         `json:"differentialDiagnosis"`
}

// DrugInteractionDetail describes one pairwise (or multi-drug) interaction.
type DrugInteractionDetail struct {
	Drugs           []string `json:"drugs"`
	Type            string   `json:"type"`
	Mechanism       string   `json:"mechanism"`
	ClinicalEffects string   `json:"clinicalEffects"`
	Management      string   `json:"management"`
}

// DrugInteractionResult is the structured interaction report for a medication list.
type DrugInteractionResult struct {
	HasInteraction  bool                    `json:"hasInteraction"`
	Severity        string                  `json:"severity" validate:"oneof=none mild moderate severe contraindicated"`
	Interactions    []DrugInteractionDetail `json:"interactions"`
	Recommendations []string                `json:"recommendations"`
	Alternatives    []string                `json:"alternatives"`
	Monitoring      string                  `json:"monitoring"`
}

// HealthRiskResult carries percentage risks in [0,100] with explanations.
type HealthRiskResult struct {
	Diabetes     float64 `json:"diabetes" validate:"gte=0,lte=100"`
	HeartAttack  float64 `json:"heartAttack" validate:"gte=0,lte=100"`
	Stroke       float64 `json:"stroke" validate:"gte=0,lte=100"`
	Explanations struct {
		Diabetes    string `json:"diabetes"`
		HeartAttack string `json:"heartAttack"`
		Stroke      string `json:"stroke"`
	} `json:"explanations"`
	Recommendations []string `json:"recommendations"`
}

// ReportSummary is the extracted content of an uploaded medical report.
type ReportSummary struct {
	PatientName     string   `json:"patientName"`
	Date            string   `json:"date"`
	KeyFindings     []string `json:"keyFindings"`
	Diagnosis       string   `json:"diagnosis"`
	Medications     []string `json:"medications"`
	Recommendations []string `json:"recommendations"`
}

// Transcription is the structured clinical note built from a consultation recording.
type Transcription struct {
	PatientName    string   `json:"patientName"`
	Date           string   `json:"date"`
	ChiefComplaint string   `json:"chiefComplaint"`
	Symptoms       []string `json:"symptoms"`
	Diagnosis      string   `json:"diagnosis"`
	Medications    []string `json:"medications"`
	FollowUp       string   `json:"followUp"`
}

// Decode unmarshals a schema-mode model response into T and validates its
// field constraints. Any failure is a schema violation: the model was asked
// for this exact shape.
func Decode[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := validate.Struct(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return &out, nil
}
