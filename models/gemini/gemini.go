package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"carebridge-backend/models"
	"carebridge-backend/stores"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 60 * time.Second
)

// Client calls the generativelanguage REST API directly. Every call carries a
// deadline: expiry surfaces as models.ErrUpstreamTimeout, transport and
// provider failures as models.ErrUpstreamUnavailable. The API key travels in
// the x-goog-api-key header, never in the URL, so it cannot end up in error
// strings or request logs.
type Client struct {
	Model      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration

	sdk     *genai.Client
	sdkOnce sync.Once
	sdkErr  error
}

// NewClient creates a Gemini client with sane defaults.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		Model:      model,
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

// Generate performs a schema-mode invocation: the model is constrained to
// produce JSON conforming to the given schema. The returned bytes are a valid
// JSON document; anything else is a schema violation.
func (c *Client) Generate(ctx context.Context, p Prompt, schema *Schema) ([]byte, error) {
	body := buildRequestBody(p, &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})

	resp, err := c.generateContent(ctx, body)
	if err != nil {
		return nil, err
	}

	raw := []byte(strings.TrimSpace(resp.text()))
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: constrained response is not valid JSON", models.ErrSchemaViolation)
	}
	return raw, nil
}

// GenerateText performs a free-text invocation and returns the raw response
// text. Callers that expect embedded JSON run ExtractJSONObject over it.
func (c *Client) GenerateText(ctx context.Context, p Prompt) (string, error) {
	resp, err := c.generateContent(ctx, buildRequestBody(p, nil))
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}

// StreamGenerate invokes the model with conversation history and returns the
// response as it is produced, one text chunk per channel send. The error
// channel carries at most one error; both channels close when the stream ends.
func (c *Client) StreamGenerate(ctx context.Context, system string, history []stores.Turn, message string) (<-chan string, <-chan error) {
	resChan := make(chan string)
	errChan := make(chan error, 1)

	contents, historySystem := buildContents(history, message)
	if historySystem != "" {
		if system != "" {
			system += "\n\n"
		}
		system += historySystem
	}

	body := requestBody{Contents: contents}
	if system != "" {
		body.SystemInstruction = &systemInstruction{Parts: []requestPart{{Text: system}}}
	}

	go func() {
		defer close(resChan)
		defer close(errChan)

		ctx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()

		resp, err := c.post(ctx, "streamGenerateContent", body)
		if err != nil {
			errChan <- err
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			log.Printf("gemini stream request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
			errChan <- fmt.Errorf("%w: unexpected status %d", models.ErrUpstreamUnavailable, resp.StatusCode)
			return
		}

		// The streaming endpoint emits a JSON array of response objects;
		// decode elements as they arrive.
		decoder := json.NewDecoder(resp.Body)

		t, err := decoder.Token()
		if err != nil {
			errChan <- classify(ctx, fmt.Errorf("error reading stream opening: %w", err))
			return
		}
		if delim, ok := t.(json.Delim); !ok || delim != '[' {
			errChan <- fmt.Errorf("%w: expected '[' at start of stream, got %v", models.ErrUpstreamUnavailable, t)
			return
		}

		for decoder.More() {
			var chunk geminiResponse
			if err := decoder.Decode(&chunk); err != nil {
				errChan <- classify(ctx, fmt.Errorf("error decoding stream chunk: %w", err))
				return
			}
			text := chunk.text()
			if text == "" {
				continue
			}
			select {
			case resChan <- text:
			case <-ctx.Done():
				errChan <- classify(ctx, ctx.Err())
				return
			}
		}
	}()

	return resChan, errChan
}

func (c *Client) generateContent(ctx context.Context, body requestBody) (*geminiResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	resp, err := c.post(ctx, "generateContent", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("gemini request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
		return nil, fmt.Errorf("%w: unexpected status %d", models.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, classify(ctx, fmt.Errorf("error decoding response: %w", err))
	}
	return &parsed, nil
}

func (c *Client) post(ctx context.Context, method string, body requestBody) (*http.Response, error) {
	jsonBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	url := fmt.Sprintf("%s/models/%s:%s", baseURL, c.Model, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	return resp, nil
}

// classify maps a low-level failure to the taxonomy. Deadline expiry wins over
// whatever transport error it caused.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", models.ErrUpstreamTimeout, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
}

func buildRequestBody(p Prompt, config *generationConfig) requestBody {
	parts := []requestPart{}
	if p.Text != "" {
		parts = append(parts, requestPart{Text: p.Text})
	}
	if p.Image != nil {
		parts = append(parts, requestPart{InlineData: p.Image})
	}

	body := requestBody{
		Contents:         []requestContent{{Role: "user", Parts: parts}},
		GenerationConfig: config,
	}
	if p.System != "" {
		body.SystemInstruction = &systemInstruction{Parts: []requestPart{{Text: p.System}}}
	}
	return body
}

// buildContents converts stored turns to request contents. System turns have
// no role on the wire; their text is folded into the system instruction.
func buildContents(history []stores.Turn, message string) ([]requestContent, string) {
	contents := make([]requestContent, 0, len(history)+1)
	var systemParts []string

	for _, turn := range history {
		role := "user"
		switch turn.Role {
		case stores.RoleSystem:
			systemParts = append(systemParts, turn.Text)
			continue
		case stores.RoleAssistant:
			role = "model"
		}
		contents = append(contents, requestContent{
			Role:  role,
			Parts: []requestPart{{Text: turn.Text}},
		})
	}

	if message != "" {
		contents = append(contents, requestContent{
			Role:  "user",
			Parts: []requestPart{{Text: message}},
		})
	}

	return contents, strings.Join(systemParts, "\n\n")
}
