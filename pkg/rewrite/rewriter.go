// FILE: pkg/rewrite/rewriter.go
// PURPOSE: Optional LLM pre-processing. Free-form transcripts are rewritten
// into canonical trigger-phrase commands before routing so messy speech still
// lands on the right tool. Every failure falls back to the raw transcript.

package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = `You rewrite free-form voice transcripts into compact commands for a voice agent.
Return a JSON object with keys:
  action: one of ["search", "calculate", "add_note", "list_notes", "answer"].
  content: short string payload (may be empty for list_notes).
Rules:
- Use action="search" when the user asks to find, learn about, or research something. content should be the topic.
- Use action="calculate" for math questions. content should contain only the expression (numbers/operators).
- Use action="add_note" when the user wants to remember something. content is the note text.
- Use action="list_notes" when they want to hear existing notes.
- Use action="answer" for everything else. Keep content under 200 characters and conversational.
- Never include explanations outside the JSON.`

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "meta-llama/llama-3.3-70b-instruct:free"

	maxDirectAnswerLen = 240
)

// Result is the rewriter's output. When Answer is non-empty the agent should
// speak it directly (after verification) instead of routing the transcript.
type Result struct {
	Transcript string
	Answer     string
}

type Rewriter struct {
	apiKey     string
	model      string
	baseURL    string
	referer    string
	title      string
	httpClient *http.Client
}

func NewRewriter(apiKey, model, baseURL, referer, title string) *Rewriter {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Rewriter{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		referer: referer,
		title:   title,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether an API key is configured; without one the rewriter
// is a pass-through.
func (r *Rewriter) Enabled() bool {
	return r.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type command struct {
	Action  string `json:"action"`
	Content string `json:"content"`
}

// Rewrite maps a raw transcript onto a canonical command transcript or a
// direct answer. It never returns an error: any failure along the way yields
// the raw transcript unchanged.
func (r *Rewriter) Rewrite(ctx context.Context, raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" || !r.Enabled() {
		return Result{Transcript: raw}
	}

	reply, err := r.complete(ctx, raw)
	if err != nil {
		return Result{Transcript: raw}
	}

	cmd, ok := parseCommand(reply)
	if !ok {
		return Result{Transcript: raw}
	}

	payload := strings.TrimSpace(cmd.Content)
	switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
	case "search":
		if payload == "" {
			payload = raw
		}
		return Result{Transcript: "search " + payload}
	case "calculate":
		if payload == "" {
			payload = raw
		}
		return Result{Transcript: "calculate " + payload}
	case "add_note":
		if payload == "" {
			payload = raw
		}
		return Result{Transcript: "add a note " + payload}
	case "list_notes":
		return Result{Transcript: "list notes"}
	case "answer":
		if payload != "" {
			if runes := []rune(payload); len(runes) > maxDirectAnswerLen {
				payload = strings.TrimSpace(string(runes[:maxDirectAnswerLen]))
			}
			return Result{Transcript: raw, Answer: payload}
		}
	}
	return Result{Transcript: raw}
}

func (r *Rewriter) complete(ctx context.Context, raw string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: raw},
		},
		MaxTokens:   200,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if r.referer != "" {
		req.Header.Set("HTTP-Referer", r.referer)
	}
	if r.title != "" {
		req.Header.Set("X-Title", r.title)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("rewrite request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rewrite error: status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return chat.Choices[0].Message.Content, nil
}

// parseCommand extracts the first {...} JSON object from a model reply,
// which may be wrapped in prose or markdown fences.
func parseCommand(reply string) (command, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end <= start {
		return command{}, false
	}

	var cmd command
	if err := json.Unmarshal([]byte(reply[start:end+1]), &cmd); err != nil {
		return command{}, false
	}
	return cmd, true
}
