package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeRequiresConfiguration(t *testing.T) {
	c := NewClient("", "", "")
	_, err := c.Synthesize(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSynthesizeReturnsAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/wav", r.Header.Get("Accept"))

		var req synthesizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello world", req.Text)
		assert.Equal(t, "wav", req.OutputFormat)

		_, _ = w.Write([]byte("RIFFxxxxWAVEdata"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("key-1", "voice-1", "", srv.URL)
	audio, err := c.Synthesize(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFFxxxxWAVEdata"), audio)
}

func TestSynthesizeEmptyTextUsesFallbackLine(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesizeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		got = req.Text
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k", "v", "", srv.URL)
	_, err := c.Synthesize(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "There is no text for me to speak.", got)
}

func TestSynthesizeUpstreamErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad voice", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k", "v", "", srv.URL)
	_, err := c.Synthesize(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSynthesizeNetworkErrorRetriesOnce(t *testing.T) {
	// nothing listens here, every attempt is a network error
	c := NewClientWithBaseURL("k", "v", "", "http://127.0.0.1:1")
	_, err := c.Synthesize(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
}
