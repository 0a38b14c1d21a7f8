// FILE: pkg/agent/state/state.go
package state

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a transcript.
type Intent string

const (
	IntentNotes     Intent = "NOTES"
	IntentNotesList Intent = "NOTES_LIST"
	IntentCalc      Intent = "CALC"
	IntentSearch    Intent = "SEARCH"
	IntentAnswer    Intent = "ANSWER"
)

// Turn is the mutable record threaded through the four pipeline stages.
// Each stage owns specific fields: the router writes Intent, the dispatcher
// writes ToolResult/CalcStatus, the composer writes DraftAnswer, and the
// verifier owns Answer/Truncated/Continuation/FullAnswer. A Turn lives for
// exactly one invocation and is never persisted.
type Turn struct {
	// Transcript is the raw input, kept unnormalized so the fallback
	// composer can quote the user verbatim.
	Transcript string

	Intent     Intent
	ToolResult any
	CalcStatus int

	DraftAnswer string

	Answer       string
	Truncated    bool
	Continuation string
	FullAnswer   string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTranscript lower-cases, collapses whitespace, and trims. The
// router and dispatcher classify and extract payloads from this form only.
func NormalizeTranscript(text string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(strings.ToLower(text)), " ")
}
