package service

import (
	"context"
	"errors"
	"time"

	"github.com/barathvelmu/deterministic-voice-intelligence/internal/dto"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/pkg/logger"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/repository/memory"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/state"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/events"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/notes"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/rewrite"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/store"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("continuation session not found")

// TranscriptRewriter is the optional LLM pre-processing step in front of the
// pipeline. pkg/rewrite satisfies it; tests swap in a stub.
type TranscriptRewriter interface {
	Rewrite(ctx context.Context, raw string) rewrite.Result
	Enabled() bool
}

type IAgentService interface {
	Run(ctx context.Context, transcript string) (*dto.AgentResponse, error)
	Continue(ctx context.Context, continuationID string) (*dto.AgentResponse, error)
}

type agentService struct {
	pipeline  *agent.Pipeline
	rewriter  TranscriptRewriter
	sessions  *memory.SessionRepository
	publisher IPublisherService
	logger    logger.ILogger
}

func NewAgentService(
	pipeline *agent.Pipeline,
	rewriter TranscriptRewriter,
	sessions *memory.SessionRepository,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IAgentService {
	return &agentService{
		pipeline:  pipeline,
		rewriter:  rewriter,
		sessions:  sessions,
		publisher: publisher,
		logger:    sysLogger,
	}
}

func (s *agentService) Run(ctx context.Context, transcript string) (*dto.AgentResponse, error) {
	var turn *state.Turn

	rewritten := s.rewriter.Rewrite(ctx, transcript)
	if rewritten.Answer != "" {
		// The rewriter answered directly; only the verifier runs.
		turn = s.pipeline.VerifyDirect(rewritten.Answer)
		turn.Intent = state.IntentAnswer
		turn.ToolResult = nil
	} else {
		turn = s.pipeline.Run(ctx, rewritten.Transcript)
	}

	s.publishNoteActivity(turn)

	resp := &dto.AgentResponse{
		Text:       turn.Answer,
		Intent:     string(turn.Intent),
		ToolResult: turn.ToolResult,
		Truncated:  turn.Truncated,
	}
	if turn.Truncated {
		resp.ContinuationID = s.saveContinuation(turn)
	}

	s.logger.Info("agent", "Turn completed", map[string]interface{}{
		"intent":    string(turn.Intent),
		"truncated": turn.Truncated,
		"rewritten": s.rewriter.Enabled(),
	})

	return resp, nil
}

func (s *agentService) Continue(ctx context.Context, continuationID string) (*dto.AgentResponse, error) {
	session, found := s.sessions.Get(continuationID)
	if !found {
		return nil, ErrSessionNotFound
	}
	s.sessions.Delete(continuationID)

	turn := s.pipeline.VerifyDirect(session.Continuation)
	turn.Intent = state.Intent(session.Intent)

	resp := &dto.AgentResponse{
		Text:       turn.Answer,
		Intent:     string(turn.Intent),
		ToolResult: turn.ToolResult,
		Truncated:  turn.Truncated,
	}
	if turn.Truncated {
		resp.ContinuationID = s.saveContinuation(turn)
	}

	return resp, nil
}

func (s *agentService) saveContinuation(turn *state.Turn) string {
	session := &store.Session{
		ID:           uuid.New().String(),
		Intent:       string(turn.Intent),
		Continuation: turn.Continuation,
		FullAnswer:   turn.FullAnswer,
		CreatedAt:    time.Now(),
	}
	s.sessions.Save(session)
	return session.ID
}

func (s *agentService) publishNoteActivity(turn *state.Turn) {
	if turn.Intent != state.IntentNotes {
		return
	}
	added, ok := turn.ToolResult.(notes.AddResult)
	if !ok || !added.OK {
		return
	}

	event := events.NewNoteAdded(turn.Transcript, added.Count)
	if err := s.publisher.Publish(event); err != nil {
		s.logger.Warn("agent", "Failed to publish note activity", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
