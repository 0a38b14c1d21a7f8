// FILE: pkg/agent/response/composer.go
// PURPOSE: Stage three of the pipeline. Renders the raw tool result into a
// natural-language draft answer; the verifier trims it to the spoken budget.

package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/state"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/mathexpr"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/notes"
	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/wiki"
)

// Compose writes the per-intent draft answer onto the turn. Tool results
// that do not match the expected shape for the intent fall through to the
// intent's failure sentence; composition itself never fails.
func Compose(turn *state.Turn) {
	switch turn.Intent {
	case state.IntentSearch:
		snippets, _ := turn.ToolResult.([]wiki.Snippet)
		turn.DraftAnswer = composeSearch(snippets)
	case state.IntentNotes:
		res, _ := turn.ToolResult.(notes.AddResult)
		turn.DraftAnswer = composeNoteSaved(res)
	case state.IntentNotesList:
		res, _ := turn.ToolResult.(notes.ListResult)
		turn.DraftAnswer = composeNoteList(res)
	case state.IntentCalc:
		res, _ := turn.ToolResult.(mathexpr.Result)
		turn.DraftAnswer = composeCalc(res, turn.CalcStatus)
	default:
		turn.DraftAnswer = composeEcho(turn.Transcript)
	}
}

func composeSearch(snippets []wiki.Snippet) string {
	if len(snippets) == 0 {
		return MsgSearchEmpty
	}

	var lines []string
	for _, s := range snippets[:min(len(snippets), maxSearchSnippets)] {
		title := s.Title
		if title == "" {
			title = "(no title)"
		}
		summary := strings.ReplaceAll(s.Summary, "\n", " ")
		if runes := []rune(summary); len(runes) > maxSummaryLen {
			summary = strings.TrimRight(string(runes[:maxSummaryLen-3]), " \t") + "..."
		}
		lines = append(lines, title+": "+summary)
	}
	return MsgSearchIntro + "\n" + strings.Join(lines, "\n")
}

func composeNoteSaved(res notes.AddResult) string {
	if !res.OK {
		return MsgNoteSaveFailed
	}
	noun := "notes"
	if res.Count == 1 {
		noun = "note"
	}
	return fmt.Sprintf(MsgNoteSavedFmt, res.Count, noun)
}

func composeNoteList(res notes.ListResult) string {
	if len(res.Notes) == 0 {
		return MsgNotesEmpty
	}

	shown := res.Notes[:min(len(res.Notes), maxListedNotes)]
	var lines []string
	for i, text := range shown {
		lines = append(lines, fmt.Sprintf("Note %d: %s.", i+1, text))
	}

	tail := ""
	if remaining := res.Count - len(shown); remaining > 0 {
		tail = fmt.Sprintf(MsgNotesMoreFmt, remaining)
	}
	return MsgNotesIntro + strings.Join(lines, " ") + tail
}

func composeCalc(res mathexpr.Result, status int) string {
	if status == http.StatusOK && res.Result != nil {
		return fmt.Sprintf(MsgCalcAnswerFmt, mathexpr.FormatNumber(*res.Result))
	}
	errMsg := res.Error
	if errMsg == "" {
		errMsg = MsgCalcDefaultErr
	}
	return fmt.Sprintf(MsgCalcFailureFmt, errMsg)
}

// composeEcho quotes the raw transcript, not the normalized one, so the user
// hears their own words back.
func composeEcho(raw string) string {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return MsgNotHeard
	}
	return fmt.Sprintf(MsgEchoFmt, clean)
}
