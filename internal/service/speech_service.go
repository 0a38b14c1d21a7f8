package service

import (
	"context"

	"github.com/barathvelmu/deterministic-voice-intelligence/internal/pkg/logger"
)

// Transcriber and Synthesizer abstract the speech collaborators so tests can
// substitute stubs. pkg/asr and pkg/tts provide the real clients.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

type Synthesizer interface {
	Configured() bool
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type ISpeechService interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
	Synthesize(ctx context.Context, text string) ([]byte, error)
	TTSConfigured() bool
}

type speechService struct {
	asr    Transcriber
	tts    Synthesizer
	logger logger.ILogger
}

func NewSpeechService(asr Transcriber, tts Synthesizer, sysLogger logger.ILogger) ISpeechService {
	return &speechService{
		asr:    asr,
		tts:    tts,
		logger: sysLogger,
	}
}

func (s *speechService) Transcribe(ctx context.Context, wav []byte) (string, error) {
	text, err := s.asr.Transcribe(ctx, wav)
	if err != nil {
		s.logger.Error("speech", "Transcription failed", map[string]interface{}{
			"error":       err.Error(),
			"audio_bytes": len(wav),
		})
		return "", err
	}

	s.logger.Info("speech", "Transcription completed", map[string]interface{}{
		"audio_bytes":      len(wav),
		"transcript_chars": len(text),
	})
	return text, nil
}

func (s *speechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	audio, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		s.logger.Error("speech", "Synthesis failed", map[string]interface{}{
			"error":      err.Error(),
			"text_chars": len(text),
		})
		return nil, err
	}

	s.logger.Info("speech", "Synthesis completed", map[string]interface{}{
		"text_chars":  len(text),
		"audio_bytes": len(audio),
	})
	return audio, nil
}

func (s *speechService) TTSConfigured() bool {
	return s.tts.Configured()
}
