package asr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribeReturnsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("RIFF....WAVE"), data)

		_, _ = w.Write([]byte(`{"text": "  what is 9 times 8  "}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "", "en")
	text, err := c.Transcribe(context.Background(), []byte("RIFF....WAVE"))
	require.NoError(t, err)
	assert.Equal(t, "what is 9 times 8", text)
}

func TestTranscribeServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", "")
	_, err := c.Transcribe(context.Background(), []byte("wav"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTranscribeRejectionIsInvalidAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", "")
	_, err := c.Transcribe(context.Background(), []byte("wav"))
	assert.ErrorIs(t, err, ErrInvalidAudio)
}

func TestTranscribeNetworkErrorIsUnavailable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", "", "")
	_, err := c.Transcribe(context.Background(), []byte("wav"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
