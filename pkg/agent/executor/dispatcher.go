// FILE: pkg/agent/executor/dispatcher.go
// PURPOSE: Stage two of the pipeline. Extracts the payload substring for the
// routed intent and invokes the matching tool.

package executor

import (
	"context"
	"regexp"
	"strings"

	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/state"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/mathexpr"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/notes"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/wiki"
)

// SummaryLookup is the external encyclopedia collaborator. Implementations
// must degrade to an empty list instead of returning errors.
type SummaryLookup interface {
	Summary(ctx context.Context, topic string) []wiki.Snippet
}

var (
	searchTriggers = regexp.MustCompile(`\b(search for|search|look up|lookup|find|look for)\b`)
	searchFiller   = regexp.MustCompile(`^(please|for|to)\b\s*`)
	noteTriggers   = regexp.MustCompile(`\b(add a note|add note|take a note|remember to|note to|note:|remind me to)\b`)
	calcTriggers   = regexp.MustCompile(`\b(calculate|what is|what's|how much is|evaluate|what about|how about)\b`)
	trailingMarks  = regexp.MustCompile(`[?]+$`)
	spacesRun      = regexp.MustCompile(`\s+`)
)

type Dispatcher struct {
	lookup SummaryLookup
	store  *notes.Store
}

func NewDispatcher(lookup SummaryLookup, store *notes.Store) *Dispatcher {
	return &Dispatcher{
		lookup: lookup,
		store:  store,
	}
}

// Dispatch runs the tool for the turn's intent and records the raw tool
// result on the turn. The fallback ANSWER intent performs no tool call and
// leaves the default empty result in place.
func (d *Dispatcher) Dispatch(ctx context.Context, turn *state.Turn) {
	t := state.NormalizeTranscript(turn.Transcript)
	turn.ToolResult = []any{}

	switch turn.Intent {
	case state.IntentSearch:
		topic := stripFirst(searchTriggers, t)
		topic = searchFiller.ReplaceAllString(topic, "")
		topic = collapse(topic)
		if topic == "" {
			turn.ToolResult = []wiki.Snippet{}
			return
		}
		turn.ToolResult = d.lookup.Summary(ctx, topic)

	case state.IntentNotes:
		payload := collapse(stripFirst(noteTriggers, t))
		if payload == "" {
			turn.ToolResult = notes.AddResult{OK: false, Count: 0}
			return
		}
		turn.ToolResult = d.store.Add(payload)

	case state.IntentNotesList:
		turn.ToolResult = d.store.List()

	case state.IntentCalc:
		expression := stripFirst(calcTriggers, t)
		expression = trailingMarks.ReplaceAllString(expression, "")
		expression = collapse(expression)
		if expression == "" {
			// trigger phrase was the whole utterance, evaluate everything
			expression = t
		}
		res, code := mathexpr.Calc(expression)
		turn.ToolResult = res
		turn.CalcStatus = code
	}
}

// stripFirst removes only the first trigger occurrence so a topic like
// "find my lost find" keeps its later words intact.
func stripFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

func collapse(s string) string {
	return strings.TrimSpace(spacesRun.ReplaceAllString(s, " "))
}
