// FILE: pkg/tts/elevenlabs.go
// PURPOSE: ElevenLabs speech synthesis client. One automatic retry with a
// short backoff on network-level errors only; HTTP-level errors surface
// immediately as a service failure.

package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrNotConfigured means the API key or voice id is missing.
	ErrNotConfigured = errors.New("elevenlabs not configured: set ELEVEN_API_KEY and ELEVEN_VOICE_ID")
	// ErrUnavailable wraps network and upstream failures after retries.
	ErrUnavailable = errors.New("tts service unavailable")
)

// fallbackText is spoken when the caller hands us nothing.
const fallbackText = "There is no text for me to speak."

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultModelID = "eleven_multilingual_v2"

	requestTimeout = 60 * time.Second
	maxRetries     = 1
	retryBackoff   = 500 * time.Millisecond
)

type Client struct {
	apiKey     string
	voiceID    string
	modelID    string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, voiceID, modelID string) *Client {
	if modelID == "" {
		modelID = defaultModelID
	}
	return &Client{
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: modelID,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// NewClientWithBaseURL exists for tests pointing at a stub server.
func NewClientWithBaseURL(apiKey, voiceID, modelID, baseURL string) *Client {
	c := NewClient(apiKey, voiceID, modelID)
	c.baseURL = baseURL
	return c
}

// Configured reports whether the required credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.voiceID != ""
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
	OutputFormat  string        `json:"output_format"`
}

// Synthesize converts text to WAV bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if text == "" {
		text = fallbackText
	}

	payload, err := json.Marshal(synthesizeRequest{
		Text:          text,
		ModelID:       c.modelID,
		VoiceSettings: voiceSettings{Stability: 0.5, SimilarityBoost: 0.5},
		OutputFormat:  "wav",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/v1/text-to-speech/" + url.QueryEscape(c.voiceID)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		audio, retryable, err := c.post(ctx, endpoint, payload)
		if err == nil {
			return audio, nil
		}
		lastErr = err
		if !retryable || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt+1)):
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// post performs one synthesis attempt. Only transport errors are retryable;
// an upstream HTTP error is final.
func (c *Client) post(ctx context.Context, endpoint string, payload []byte) (audio []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("network error contacting elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := body
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, false, fmt.Errorf("elevenlabs error: %d %s", resp.StatusCode, string(snippet))
	}
	return body, false, nil
}
