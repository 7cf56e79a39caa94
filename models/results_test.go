package models

import (
	"errors"
	"testing"
)

func TestDecodeSymptomAnalysisResult(t *testing.T) {
	raw := []byte(`{
		"conditions": [{
			"condition": "Migraine",
			"probability": 65,
			"severity": "medium",
			"description": "Recurrent headache disorder",
			"recommendations": ["Rest in a dark room"]
		}],
		"urgencyLevel": "soon",
		"generalAdvice": "Consult a physician."
	}`)

	result, err := Decode[SymptomAnalysisResult](raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if result.UrgencyLevel != "soon" {
		t.Errorf("expected urgencyLevel 'soon', got %q", result.UrgencyLevel)
	}
	if result.Conditions[0].Probability != 65 {
		t.Errorf("expected probability 65, got %v", result.Conditions[0].Probability)
	}
}

func TestDecodeRejectsBadEnum(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
	}{
		{"symptom severity", func() error {
			_, err := Decode[SymptomAnalysisResult]([]byte(`{
				"conditions": [{"condition": "X", "probability": 10, "severity": "fatal", "description": "", "recommendations": []}],
				"urgencyLevel": "routine",
				"generalAdvice": "a"
			}`))
			return err
		}},
		{"urgency level", func() error {
			_, err := Decode[SymptomAnalysisResult]([]byte(`{
				"conditions": [],
				"urgencyLevel": "immediately",
				"generalAdvice": "a"
			}`))
			return err
		}},
		{"disease severity lowercase", func() error {
			_, err := Decode[DiseaseDetectionResult]([]byte(`{
				"diagnosis": "X", "confidence": 50, "severity": "mild",
				"findings": [], "recommendations": [], "followUp": "", "differentialDiagnosis": []
			}`))
			return err
		}},
		{"drug severity", func() error {
			_, err := Decode[DrugInteractionResult]([]byte(`{
				"hasInteraction": true, "severity": "deadly",
				"interactions": [], "recommendations": [], "alternatives": [], "monitoring": ""
			}`))
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrSchemaViolation) {
				t.Errorf("expected ErrSchemaViolation, got %v", err)
			}
		})
	}
}

func TestDecodeRejectsOutOfRange(t *testing.T) {
	_, err := Decode[DiseaseDetectionResult]([]byte(`{
		"diagnosis": "X", "confidence": 120, "severity": "Mild",
		"findings": [], "recommendations": [], "followUp": "", "differentialDiagnosis": []
	}`))
	if !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("confidence over 100 should be a schema violation, got %v", err)
	}

	_, err = Decode[HealthRiskResult]([]byte(`{"diabetes": -5, "heartAttack": 0, "stroke": 0, "explanations": {"diabetes": "", "heartAttack": "", "stroke": ""}, "recommendations": []}`))
	if !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("negative risk should be a schema violation, got %v", err)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode[DrugInteractionResult]([]byte(`{"hasInteraction": tru`))
	if !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("expected ErrSchemaViolation for malformed JSON, got %v", err)
	}
}
