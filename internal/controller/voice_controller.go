package controller

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/barathvelmu/deterministic-voice-intelligence/internal/dto"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/pkg/serverutils"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/service"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/asr"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/tts"

	"github.com/gofiber/fiber/v2"
)

const maxAudioBytes = 10 * 1024 * 1024

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Recognize(ctx *fiber.Ctx) error
	Agent(ctx *fiber.Ctx) error
	Continue(ctx *fiber.Ctx) error
	Synthesize(ctx *fiber.Ctx) error
}

type voiceController struct {
	agentService  service.IAgentService
	speechService service.ISpeechService
}

func NewVoiceController(agentService service.IAgentService, speechService service.ISpeechService) IVoiceController {
	return &voiceController{
		agentService:  agentService,
		speechService: speechService,
	}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice/v1")
	h.Get("health", c.Health)
	h.Post("asr", c.Recognize)
	h.Post("agent", c.Agent)
	h.Post("agent/continue", c.Continue)
	h.Post("tts", c.Synthesize)
}

func (c *voiceController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{"status": "ok"}))
}

func (c *voiceController) Recognize(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No audio file uploaded")
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".wav") {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "Only .wav uploads are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
	}
	defer file.Close()

	wav, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
	}
	if len(wav) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Uploaded file is empty")
	}
	if len(wav) > maxAudioBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Audio exceeds the 10MB limit")
	}
	if !isRIFFWave(wav) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "File is not a valid WAV container")
	}

	transcript, err := c.speechService.Transcribe(ctx.Context(), wav)
	if err != nil {
		switch {
		case errors.Is(err, asr.ErrInvalidAudio):
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Audio could not be transcribed")
		case errors.Is(err, asr.ErrUnavailable):
			return fiber.NewError(fiber.StatusServiceUnavailable, "Transcription service unavailable")
		default:
			return err
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success transcribe audio", dto.ASRResponse{
		Transcript: transcript,
	}))
}

func (c *voiceController) Agent(ctx *fiber.Ctx) error {
	var req dto.AgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Run(ctx.Context(), req.Transcript)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run agent turn", res))
}

func (c *voiceController) Continue(ctx *fiber.Ctx) error {
	var req dto.ContinueRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Continue(ctx.Context(), req.ContinuationID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Continuation not found or expired")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success continue answer", res))
}

func (c *voiceController) Synthesize(ctx *fiber.Ctx) error {
	if !c.speechService.TTSConfigured() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Speech synthesis is not configured")
	}

	var req dto.TTSRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	audio, err := c.speechService.Synthesize(ctx.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, tts.ErrNotConfigured):
			return fiber.NewError(fiber.StatusServiceUnavailable, "Speech synthesis is not configured")
		case errors.Is(err, tts.ErrUnavailable):
			return fiber.NewError(fiber.StatusServiceUnavailable, "Speech synthesis unavailable")
		default:
			return err
		}
	}

	ctx.Set(fiber.HeaderContentType, "audio/wav")
	return ctx.Send(audio)
}

// isRIFFWave checks the 12-byte WAV container preamble: "RIFF" at offset 0
// and "WAVE" at offset 8.
func isRIFFWave(wav []byte) bool {
	return len(wav) >= 12 &&
		bytes.Equal(wav[0:4], []byte("RIFF")) &&
		bytes.Equal(wav[8:12], []byte("WAVE"))
}
