package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"carebridge-backend/models"
)

// sdkClient returns the shared SDK client, constructing it on first use.
func (c *Client) sdkClient() (*genai.Client, error) {
	c.sdkOnce.Do(func() {
		c.sdk, c.sdkErr = genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: c.APIKey})
	})
	if c.sdkErr != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", c.sdkErr)
	}
	return c.sdk, nil
}

// TranscribeAudio sends raw audio bytes to the model together with an
// instruction and returns the produced text. Audio goes through the official
// SDK rather than the REST path, which only carries text and image parts.
func (c *Client) TranscribeAudio(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	client, err := c.sdkClient()
	if err != nil {
		return "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(data, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, c.Model, contents, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", models.ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty transcription response", models.ErrUpstreamUnavailable)
	}

	var out string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			out += part.Text
		}
	}
	return out, nil
}
