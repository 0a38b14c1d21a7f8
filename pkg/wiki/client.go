// FILE: pkg/wiki/client.go
// PURPOSE: Wikipedia REST summary lookup. Failures of any kind degrade to an
// empty snippet list; the pipeline never sees a search error.

package wiki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const userAgent = "voice-agent/0.1"

// Snippet is one search result the composer can speak.
type Snippet struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: "https://en.wikipedia.org/api/rest_v1",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL exists for tests pointing at a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

var (
	topicPrefixes = []string{
		"search ", "search for ", "wiki ", "wikipedia ",
		"lookup ", "look up ", "tell me about ",
	}
	trailingPunct = regexp.MustCompile(`[.!?]+$`)
	innerSpaces   = regexp.MustCompile(`\s+`)
)

// ParseTopic extracts the lookup topic from a transcript fragment, stripping
// one leading trigger phrase and trailing sentence punctuation.
func ParseTopic(transcript string) string {
	t := strings.TrimSpace(transcript)
	lower := strings.ToLower(t)

	topic := t
	for _, p := range topicPrefixes {
		if strings.HasPrefix(lower, p) {
			topic = t[len(p):]
			break
		}
	}
	topic = strings.TrimSpace(trailingPunct.ReplaceAllString(topic, ""))
	return innerSpaces.ReplaceAllString(topic, " ")
}

type summaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary fetches the encyclopedia summary for a topic. It returns at most
// one snippet and an empty list on no-match or any fetch failure.
func (c *Client) Summary(ctx context.Context, rawTopic string) []Snippet {
	topic := ParseTopic(rawTopic)
	if topic == "" {
		return []Snippet{}
	}

	encoded := url.PathEscape(strings.ReplaceAll(topic, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/page/summary/"+encoded, nil)
	if err != nil {
		return []Snippet{}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return []Snippet{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []Snippet{}
	}

	var body summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return []Snippet{}
	}
	if body.Extract == "" {
		return []Snippet{}
	}

	title := body.Title
	if title == "" {
		title = topic
	}
	return []Snippet{{Title: title, Summary: body.Extract}}
}
