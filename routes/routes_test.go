package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge-backend/models"
	"carebridge-backend/models/gemini"
	"carebridge-backend/stores"
)

type fakeModel struct {
	generateJSON string
	generateErr  error
	text         string
	textErr      error
	transcript   string
	chunks       []string
	streamErr    error

	generateCalls int
	textCalls     int
	streamCalls   int
}

func (m *fakeModel) Generate(ctx context.Context, p gemini.Prompt, schema *gemini.Schema) ([]byte, error) {
	m.generateCalls++
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return []byte(m.generateJSON), nil
}

func (m *fakeModel) GenerateText(ctx context.Context, p gemini.Prompt) (string, error) {
	m.textCalls++
	if m.textErr != nil {
		return "", m.textErr
	}
	return m.text, nil
}

func (m *fakeModel) TranscribeAudio(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	if m.textErr != nil {
		return "", m.textErr
	}
	return m.transcript, nil
}

func (m *fakeModel) StreamGenerate(ctx context.Context, system string, history []stores.Turn, message string) (<-chan string, <-chan error) {
	m.streamCalls++
	res := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(res)
		defer close(errc)
		if m.streamErr != nil {
			errc <- m.streamErr
			return
		}
		for _, chunk := range m.chunks {
			res <- chunk
		}
	}()
	return res, errc
}

func newTestRouter(model *fakeModel, store stores.ConversationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if store == nil {
		store = stores.NewMemoryStore()
	}

	r := gin.New()
	Register(r, &Handlers{
		Model:  model,
		Store:  store,
		Logger: log.New(io.Discard, "", 0),
	})
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSymptomAnalysisSuccess(t *testing.T) {
	model := &fakeModel{generateJSON: `{
		"conditions": [{
			"condition": "Tension headache",
			"probability": 70,
			"severity": "low",
			"description": "Common stress-related headache",
			"recommendations": ["Rest", "Hydration"]
		}],
		"urgencyLevel": "routine",
		"generalAdvice": "See a doctor if symptoms persist."
	}`}
	r := newTestRouter(model, nil)

	w := postJSON(r, "/api/symptom-analysis", `{"symptoms": "headache for two weeks"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.SymptomAnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "routine", result.UrgencyLevel)
	require.Len(t, result.Conditions, 1)
	assert.Equal(t, "Tension headache", result.Conditions[0].Condition)
	assert.Equal(t, 1, model.generateCalls)
}

func TestValidationRejectsBeforeInvocation(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		body    string
		message string
	}{
		{"missing symptoms", "/api/symptom-analysis", `{}`, "Symptoms are required"},
		{"empty symptoms", "/api/symptom-analysis", `{"symptoms": ""}`, "Symptoms are required"},
		{"missing image", "/api/disease-detection", `{"imageType": "X-ray"}`, "Image is required"},
		{"one medication", "/api/drug-interaction", `{"medications": ["aspirin"]}`, "At least 2 medications required"},
		{"no medications", "/api/drug-interaction", `{}`, "At least 2 medications required"},
		{"missing sessionId", "/api/telemedicine", `{"message": "hi"}`, "Message and sessionId are required"},
		{"missing message", "/api/telemedicine", `{"sessionId": "s1"}`, "Message and sessionId are required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &fakeModel{}
			r := newTestRouter(model, nil)

			w := postJSON(r, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error": "`+tc.message+`"}`, w.Body.String())
			assert.Zero(t, model.generateCalls+model.textCalls+model.streamCalls,
				"model must not be invoked on invalid input")
		})
	}
}

func TestDownstreamErrorsAreGeneric(t *testing.T) {
	model := &fakeModel{generateErr: errors.New("api key leaked into the error text")}
	r := newTestRouter(model, nil)

	w := postJSON(r, "/api/symptom-analysis", `{"symptoms": "cough"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to analyze symptoms"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "leaked")
}

func TestUpstreamErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ErrUpstreamTimeout, http.StatusGatewayTimeout},
		{models.ErrUpstreamUnavailable, http.StatusBadGateway},
		{models.ErrSchemaViolation, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		model := &fakeModel{generateErr: tc.err}
		r := newTestRouter(model, nil)

		w := postJSON(r, "/api/drug-interaction", `{"medications": ["a", "b"]}`)
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestSchemaViolationFromModelOutput(t *testing.T) {
	// Severity outside the enum must not pass through to the client.
	model := &fakeModel{generateJSON: `{
		"conditions": [{
			"condition": "X",
			"probability": 150,
			"severity": "catastrophic",
			"description": "d",
			"recommendations": []
		}],
		"urgencyLevel": "routine",
		"generalAdvice": "a"
	}`}
	r := newTestRouter(model, nil)

	w := postJSON(r, "/api/symptom-analysis", `{"symptoms": "cough"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to analyze symptoms"}`, w.Body.String())
}

func TestHealthRiskExtractsEmbeddedJSON(t *testing.T) {
	model := &fakeModel{text: "Here is your assessment:\n{\"diabetes\": 12, \"heartAttack\": 8, \"stroke\": 5, \"explanations\": {\"diabetes\": \"d\", \"heartAttack\": \"h\", \"stroke\": \"s\"}, \"recommendations\": [\"exercise\"]}\nStay healthy!"}
	r := newTestRouter(model, nil)

	w := postJSON(r, "/api/health-risk", `{"age": "45", "weight": "70", "height": "175", "smoking": "never", "exercise": "weekly", "diet": "balanced"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(12), result["diabetes"])
	assert.Equal(t, []any{"exercise"}, result["recommendations"])
}

func TestHealthRiskUnparsableResponse(t *testing.T) {
	model := &fakeModel{text: "I cannot provide structured output today."}
	r := newTestRouter(model, nil)

	w := postJSON(r, "/api/health-risk", `{"age": "45", "weight": "70", "height": "175"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to calculate health risks"}`, w.Body.String())
}

func TestTelemedicineStreamsAndPersists(t *testing.T) {
	store := stores.NewMemoryStore()
	model := &fakeModel{chunks: []string{"Hel", "lo, ", "world"}}
	r := newTestRouter(model, store)

	w := postJSON(r, "/api/telemedicine", `{"message": "I feel dizzy", "sessionId": "sess-9"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, world", w.Body.String())

	turns, err := store.Get(context.Background(), "sess-9")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, stores.RoleUser, turns[0].Role)
	assert.Equal(t, stores.RoleAssistant, turns[1].Role)
	assert.Equal(t, "Hello, world", turns[1].Text)
}

func TestTelemedicineUpstreamFailureBeforeFirstChunk(t *testing.T) {
	model := &fakeModel{streamErr: models.ErrUpstreamUnavailable}
	r := newTestRouter(model, nil)

	w := postJSON(r, "/api/telemedicine", `{"message": "hi", "sessionId": "sess-10"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error": "Failed to process message"}`, w.Body.String())
}

func TestTelemedicineHistoryAndEnd(t *testing.T) {
	store := stores.NewMemoryStore()
	require.NoError(t, store.Append(context.Background(), "sess-11", stores.Turn{Role: stores.RoleUser, Text: "hello"}))

	r := newTestRouter(&fakeModel{}, store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/telemedicine/history/sess-11", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/telemedicine/sess-11", nil))
	require.Equal(t, http.StatusOK, w.Code)

	turns, err := store.Get(context.Background(), "sess-11")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSummarizeReportRequiresFile(t *testing.T) {
	r := newTestRouter(&fakeModel{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize-report", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "No file provided"}`, w.Body.String())
}

func TestTelemedicineWebSocketRoundTrip(t *testing.T) {
	store := stores.NewMemoryStore()
	model := &fakeModel{chunks: []string{"take ", "care"}}
	r := newTestRouter(model, store)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/telemedicine/ws?sessionId=ws-1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "hello doctor"}))

	var got strings.Builder
	for {
		var frame map[string]string
		require.NoError(t, conn.ReadJSON(&frame))
		if frame["type"] == "done" {
			break
		}
		require.Equal(t, "chunk", frame["type"])
		got.WriteString(frame["content"])
	}
	assert.Equal(t, "take care", got.String())

	turns, err := store.Get(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "take care", turns[1].Text)
}

func TestTelemedicineWebSocketErrorFrameIsGeneric(t *testing.T) {
	upstream := errors.New("Post \"http://host/path?key=SUPER-SECRET-KEY\": connection refused")
	model := &fakeModel{streamErr: upstream}
	r := newTestRouter(model, nil)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/telemedicine/ws?sessionId=ws-err"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "hello"}))

	var frame map[string]string
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, "error", frame["type"])
	assert.Equal(t, "Failed to process message", frame["error"])
	assert.NotContains(t, frame["error"], "SECRET")
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(&fakeModel{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
