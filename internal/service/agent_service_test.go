package service

import (
	"context"
	"strings"
	"testing"

	"github.com/barathvelmu/deterministic-voice-intelligence/internal/repository/memory"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/events"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/notes"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/rewrite"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubRewriter struct {
	result  rewrite.Result
	enabled bool
}

func (s *stubRewriter) Rewrite(_ context.Context, raw string) rewrite.Result {
	if !s.enabled {
		return rewrite.Result{Transcript: strings.TrimSpace(raw)}
	}
	return s.result
}

func (s *stubRewriter) Enabled() bool { return s.enabled }

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

type stubLookup struct {
	snippets []wiki.Snippet
}

func (s *stubLookup) Summary(_ context.Context, _ string) []wiki.Snippet {
	return s.snippets
}

func newTestAgentService(rw TranscriptRewriter, pub IPublisherService, snippets []wiki.Snippet) IAgentService {
	pipeline := agent.NewPipeline(&stubLookup{snippets: snippets}, notes.NewStore())
	return NewAgentService(pipeline, rw, memory.NewSessionRepository(), pub, nopLogger{})
}

func TestAgentServiceRunCalc(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestAgentService(&stubRewriter{}, pub, nil)

	res, err := svc.Run(context.Background(), "what is 9 times 8")
	require.NoError(t, err)

	assert.Equal(t, "The answer is 72.", res.Text)
	assert.Equal(t, "CALC", res.Intent)
	assert.False(t, res.Truncated)
	assert.Empty(t, res.ContinuationID)
	assert.Empty(t, pub.published)
}

func TestAgentServiceRunPublishesNoteActivity(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestAgentService(&stubRewriter{}, pub, nil)

	res, err := svc.Run(context.Background(), "remember to water the plants")
	require.NoError(t, err)

	assert.Equal(t, "NOTES", res.Intent)
	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeNoteAdded, pub.published[0].EventType())
	assert.Equal(t, 1, pub.published[0].Payload()["count"])
}

func TestAgentServiceRunNoEventOnEmptyNote(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestAgentService(&stubRewriter{}, pub, nil)

	_, err := svc.Run(context.Background(), "note to")
	require.NoError(t, err)
	assert.Empty(t, pub.published)
}

func TestAgentServiceDirectAnswerBypassesPipeline(t *testing.T) {
	rw := &stubRewriter{
		enabled: true,
		result: rewrite.Result{
			Transcript: "why is the sky blue",
			Answer:     "Because sunlight scatters off air molecules.",
		},
	}
	svc := newTestAgentService(rw, &recordingPublisher{}, nil)

	res, err := svc.Run(context.Background(), "why is the sky blue")
	require.NoError(t, err)

	assert.Equal(t, "ANSWER", res.Intent)
	assert.Equal(t, "Because sunlight scatters off air molecules.", res.Text)
	assert.Nil(t, res.ToolResult)
}

func TestAgentServiceContinuationRoundTrip(t *testing.T) {
	long := strings.Repeat("All work and no play makes for dull answers. ", 20)
	snippets := []wiki.Snippet{{Title: "Boredom", Summary: long}}
	svc := newTestAgentService(&stubRewriter{}, &recordingPublisher{}, snippets)

	first, err := svc.Run(context.Background(), "search for boredom")
	require.NoError(t, err)
	require.True(t, first.Truncated)
	require.NotEmpty(t, first.ContinuationID)
	assert.LessOrEqual(t, len([]rune(first.Text)), 300)

	second, err := svc.Continue(context.Background(), first.ContinuationID)
	require.NoError(t, err)
	assert.NotEmpty(t, second.Text)
	assert.LessOrEqual(t, len([]rune(second.Text)), 300)

	// The continuation is popped, a second resume with the same id fails.
	_, err = svc.Continue(context.Background(), first.ContinuationID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAgentServiceContinueUnknownID(t *testing.T) {
	svc := newTestAgentService(&stubRewriter{}, &recordingPublisher{}, nil)

	_, err := svc.Continue(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
