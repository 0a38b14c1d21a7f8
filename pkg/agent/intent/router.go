// FILE: pkg/agent/intent/router.go
// PURPOSE: Deterministic intent classification. An ordered rule cascade
// encodes intent priority: note phrases outrank calculation and search
// because the phrase sets overlap ("remind me to..." must never read as
// arithmetic). First match wins.

package intent

import (
	"regexp"

	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/state"
)

var (
	negationPattern = regexp.MustCompile(`\b(don't|do not|never|no)\b`)

	notesPattern     = regexp.MustCompile(`\b(add note|add a note|take a note|remember to|note to|note:|remind me to)\b`)
	notesListPattern = regexp.MustCompile(`\b(list notes|show notes|read notes|what notes|my notes)\b`)
	calcPattern      = regexp.MustCompile(`\b(calculate|what is|what's|how much is|evaluate|what about|how about)\b`)
	digitPattern     = regexp.MustCompile(`\b\d+\b`)
	operatorPattern  = regexp.MustCompile(`[+\-*/%]|\*\*`)
	searchPattern    = regexp.MustCompile(`\b(search|search for|find|look up|lookup|look for|tell me about)\b`)
)

// rule pairs a predicate with the intent it selects. Every rule in the
// cascade is suppressed when a negation marker appears anywhere in the
// transcript; that is deliberately blunt (a stray "no" inside a longer query
// also suppresses) and is kept as defined behavior.
type rule struct {
	matches func(t string) bool
	intent  state.Intent
}

var cascade = []rule{
	{func(t string) bool { return notesPattern.MatchString(t) }, state.IntentNotes},
	{func(t string) bool { return notesListPattern.MatchString(t) }, state.IntentNotesList},
	{func(t string) bool {
		return calcPattern.MatchString(t) ||
			(digitPattern.MatchString(t) && operatorPattern.MatchString(t))
	}, state.IntentCalc},
	{func(t string) bool { return searchPattern.MatchString(t) }, state.IntentSearch},
}

// Route classifies a normalized transcript into exactly one intent. It always
// terminates in a defined intent; ambiguity is never an error.
func Route(normalized string) state.Intent {
	if normalized == "" {
		return state.IntentAnswer
	}

	negated := negationPattern.MatchString(normalized)
	for _, r := range cascade {
		if r.matches(normalized) && !negated {
			return r.intent
		}
	}
	return state.IntentAnswer
}
