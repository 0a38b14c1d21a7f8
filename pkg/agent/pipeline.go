// FILE: pkg/agent/pipeline.go
// PURPOSE: Orchestrates the fixed four-stage turn pipeline:
// Router -> Dispatcher -> Composer -> Verifier. One synchronous pass per
// transcript; stages are never skipped or reordered.

package agent

import (
	"context"

	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/executor"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/intent"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/response"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/state"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/verify"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/notes"
)

type Pipeline struct {
	dispatcher *executor.Dispatcher
}

// NewPipeline wires the dispatcher's collaborators. The note store is owned
// by the caller (construct once, inject everywhere) so tests can isolate
// state with a fresh store.
func NewPipeline(lookup executor.SummaryLookup, store *notes.Store) *Pipeline {
	return &Pipeline{
		dispatcher: executor.NewDispatcher(lookup, store),
	}
}

// Run processes one transcript through all four stages and returns the
// completed turn. Classification ambiguity is never an error and every
// failure path still yields a spoken-safe answer, so Run cannot fail.
func (p *Pipeline) Run(ctx context.Context, transcript string) *state.Turn {
	turn := &state.Turn{Transcript: transcript}

	turn.Intent = intent.Route(state.NormalizeTranscript(transcript))
	p.dispatcher.Dispatch(ctx, turn)
	response.Compose(turn)
	verify.Verify(turn)

	return turn
}

// VerifyDirect runs only the verifier over an already-composed answer. The
// transcript rewriter uses this when it produces a conversational reply that
// bypasses routing and dispatch.
func (p *Pipeline) VerifyDirect(answer string) *state.Turn {
	turn := &state.Turn{Intent: state.IntentAnswer, DraftAnswer: answer}
	verify.Verify(turn)
	return turn
}
