package gemini

import (
	"encoding/json"
	"errors"
	"testing"

	"carebridge-backend/models"
)

func TestExtractJSONObjectFromProse(t *testing.T) {
	text := "Here is the assessment you asked for:\n```json\n{\"riskScore\": 42, \"riskLevel\": \"moderate\"}\n```\nLet me know if you need anything else."

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject returned error: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("extracted bytes are not valid JSON: %v", err)
	}
	if parsed["riskLevel"] != "moderate" {
		t.Errorf("expected riskLevel 'moderate', got %v", parsed["riskLevel"])
	}
}

func TestExtractJSONObjectNestedBraces(t *testing.T) {
	text := `prefix {"outer": {"inner": {"deep": 1}}, "list": [{"a": 2}]} suffix`

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject returned error: %v", err)
	}
	if string(raw) != `{"outer": {"inner": {"deep": 1}}, "list": [{"a": 2}]}` {
		t.Errorf("extracted wrong span: %s", raw)
	}
}

func TestExtractJSONObjectBracesInsideStrings(t *testing.T) {
	text := `note: {"summary": "use {braces} and \"quotes\" freely", "ok": true} trailing`

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject returned error: %v", err)
	}

	var parsed struct {
		Summary string `json:"summary"`
		OK      bool   `json:"ok"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("extracted bytes are not valid JSON: %v", err)
	}
	if parsed.Summary != `use {braces} and "quotes" freely` {
		t.Errorf("string content mangled: %q", parsed.Summary)
	}
}

func TestExtractJSONObjectSkipsInvalidCandidate(t *testing.T) {
	text := `{not json} but later {"valid": true}`

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject returned error: %v", err)
	}
	if string(raw) != `{"valid": true}` {
		t.Errorf("expected second candidate, got %s", raw)
	}
}

func TestExtractJSONObjectStringParityRecovery(t *testing.T) {
	// The first brace never balances because a quote opens a string that
	// swallows the rest; the object starting inside that string is still
	// found when scanning restarts from the next brace.
	text := `{ "a {"b":1}`

	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject returned error: %v", err)
	}
	if string(raw) != `{"b":1}` {
		t.Errorf("expected recovery from later brace, got %s", raw)
	}
}

func TestExtractJSONObjectNoObject(t *testing.T) {
	for _, text := range []string{
		"no braces at all",
		"unbalanced {\"a\": 1",
		"",
	} {
		_, err := ExtractJSONObject(text)
		if !errors.Is(err, models.ErrResponseParse) {
			t.Errorf("input %q: expected ErrResponseParse, got %v", text, err)
		}
	}
}
