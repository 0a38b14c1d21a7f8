package rewrite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		resp := `{"choices":[{"message":{"role":"assistant","content":` + content + `}}]}`
		_, _ = w.Write([]byte(resp))
	}
}

func TestRewriterDisabledPassThrough(t *testing.T) {
	r := NewRewriter("", "", "", "", "")

	res := r.Rewrite(context.Background(), "  what is the weather  ")
	assert.Equal(t, "what is the weather", res.Transcript)
	assert.Empty(t, res.Answer)
	assert.False(t, r.Enabled())
}

func TestRewriterMapsActions(t *testing.T) {
	tests := []struct {
		name           string
		reply          string
		raw            string
		wantTranscript string
		wantAnswer     string
	}{
		{
			name:           "search topic",
			reply:          `"{\"action\":\"search\",\"content\":\"Ada Lovelace\"}"`,
			raw:            "hey could you find out stuff about ada lovelace",
			wantTranscript: "search Ada Lovelace",
		},
		{
			name:           "calculate expression",
			reply:          `"{\"action\":\"calculate\",\"content\":\"14 + 9\"}"`,
			raw:            "um what do you get if you add fourteen and nine",
			wantTranscript: "calculate 14 + 9",
		},
		{
			name:           "add note",
			reply:          `"{\"action\":\"add_note\",\"content\":\"buy milk\"}"`,
			raw:            "oh I should probably not forget to buy milk",
			wantTranscript: "add a note buy milk",
		},
		{
			name:           "list notes",
			reply:          `"{\"action\":\"list_notes\",\"content\":\"\"}"`,
			raw:            "what did I ask you to remember again",
			wantTranscript: "list notes",
		},
		{
			name:           "direct answer keeps raw transcript",
			reply:          `"{\"action\":\"answer\",\"content\":\"The sky looks blue because of Rayleigh scattering.\"}"`,
			raw:            "why is the sky blue",
			wantTranscript: "why is the sky blue",
			wantAnswer:     "The sky looks blue because of Rayleigh scattering.",
		},
		{
			name:           "json wrapped in prose",
			reply:          `"Sure! Here you go: {\"action\":\"search\",\"content\":\"Go language\"} Hope that helps."`,
			raw:            "tell me about golang",
			wantTranscript: "search Go language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(chatReply(t, tt.reply))
			defer srv.Close()

			r := NewRewriter("test-key", "test-model", srv.URL, "", "")
			res := r.Rewrite(context.Background(), tt.raw)

			assert.Equal(t, tt.wantTranscript, res.Transcript)
			assert.Equal(t, tt.wantAnswer, res.Answer)
		})
	}
}

func TestRewriterDirectAnswerCapped(t *testing.T) {
	long := strings.Repeat("a", 500)
	srv := httptest.NewServer(chatReply(t, `"{\"action\":\"answer\",\"content\":\"`+long+`\"}"`))
	defer srv.Close()

	r := NewRewriter("test-key", "", srv.URL, "", "")
	res := r.Rewrite(context.Background(), "tell me something long")

	require.NotEmpty(t, res.Answer)
	assert.Len(t, []rune(res.Answer), 240)
}

func TestRewriterFallsBackOnFailure(t *testing.T) {
	t.Run("upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		r := NewRewriter("test-key", "", srv.URL, "", "")
		res := r.Rewrite(context.Background(), "search for cats")
		assert.Equal(t, "search for cats", res.Transcript)
		assert.Empty(t, res.Answer)
	})

	t.Run("no json in reply", func(t *testing.T) {
		srv := httptest.NewServer(chatReply(t, `"I cannot do that."`))
		defer srv.Close()

		r := NewRewriter("test-key", "", srv.URL, "", "")
		res := r.Rewrite(context.Background(), "search for cats")
		assert.Equal(t, "search for cats", res.Transcript)
	})

	t.Run("unknown action", func(t *testing.T) {
		srv := httptest.NewServer(chatReply(t, `"{\"action\":\"dance\",\"content\":\"salsa\"}"`))
		defer srv.Close()

		r := NewRewriter("test-key", "", srv.URL, "", "")
		res := r.Rewrite(context.Background(), "do a dance")
		assert.Equal(t, "do a dance", res.Transcript)
	})

	t.Run("unreachable server", func(t *testing.T) {
		r := NewRewriter("test-key", "", "http://127.0.0.1:1", "", "")
		res := r.Rewrite(context.Background(), "search for cats")
		assert.Equal(t, "search for cats", res.Transcript)
	})
}
