// FILE: pkg/agent/verify/verifier.go
// PURPOSE: Stage four of the pipeline. Fits the draft answer into the spoken
// budget and keeps the remainder so the voice layer can resume on demand.

package verify

import (
	"strings"

	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/agent/state"
)

// SpokenMaxLen is the voice-output budget in characters. Short, so synthesized
// replies stay snappy.
const SpokenMaxLen = 300

// Verify populates Answer, Truncated, Continuation and FullAnswer on the
// turn. A draft within budget passes through untouched. A longer draft is cut
// at the last sentence terminator within the budget, falling back to the last
// space, falling back to a hard cut; the remainder becomes the continuation.
// Invariant: Answer plus Continuation reconstructs FullAnswer up to
// whitespace at the cut boundary.
func Verify(turn *state.Turn) {
	draft := turn.DraftAnswer
	if draft == "" {
		draft = turn.Answer
	}
	ans := strings.TrimSpace(draft)

	turn.Truncated = false
	turn.Continuation = ""
	turn.FullAnswer = ""

	if ans == "" {
		turn.Answer = ""
		return
	}

	runes := []rune(ans)
	if len(runes) <= SpokenMaxLen {
		turn.Answer = ans
		return
	}

	window := runes[:SpokenMaxLen]
	spoken := ""

	// sentence terminators in priority order
	cut := -1
	for _, term := range []rune{'.', '!', '?'} {
		if cut = lastIndexRune(window, term); cut > 0 {
			break
		}
	}
	if cut > 0 {
		spoken = strings.TrimSpace(string(runes[:cut+1]))
	} else if spaceCut := lastIndexRune(window, ' '); spaceCut > 0 {
		spoken = strings.TrimSpace(string(runes[:spaceCut]))
	} else {
		spoken = strings.TrimRight(string(window), " \t\n")
	}

	remainder := strings.TrimLeft(string(runes[len([]rune(spoken)):]), " \t\n")

	turn.FullAnswer = ans
	turn.Answer = spoken
	turn.Continuation = remainder
	turn.Truncated = true
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
