package bootstrap

import (
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/config"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/controller"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/pkg/logger"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/repository/memory"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/service"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/asr"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/notes"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/rewrite"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/tts"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/wiki"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	VoiceController controller.IVoiceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Collaborators
	wikiClient := wiki.NewClient()
	asrClient := asr.NewClient(cfg.ASR.BaseURL, cfg.ASR.APIKey, cfg.ASR.Model, cfg.ASR.Language)
	ttsClient := tts.NewClient(cfg.TTS.APIKey, cfg.TTS.VoiceID, cfg.TTS.ModelID)
	rewriter := rewrite.NewRewriter(
		cfg.Rewrite.APIKey,
		cfg.Rewrite.Model,
		cfg.Rewrite.BaseURL,
		cfg.Rewrite.Referer,
		cfg.Rewrite.Title,
	)

	// Note store is constructed once here so every request shares it and
	// tests can build containers with isolated state.
	noteStore := notes.NewStore()
	pipeline := agent.NewPipeline(wikiClient, noteStore)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.NoteActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.NoteActivityTopic, sysLogger)

	agentService := service.NewAgentService(
		pipeline,
		rewriter,
		sessionRepo,
		publisherService,
		sysLogger,
	)
	speechService := service.NewSpeechService(asrClient, ttsClient, sysLogger)

	// 5. Controllers
	return &Container{
		VoiceController: controller.NewVoiceController(agentService, speechService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
