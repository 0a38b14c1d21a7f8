// FILE: pkg/agent/response/messages.go
// PURPOSE: Every fixed reply the composer can produce lives here so the
// spoken vocabulary of the agent is reviewable in one place.

package response

const (
	MsgSearchIntro = "Here's what I found."
	MsgSearchEmpty = "I couldn't find anything solid on that topic. Try rephrasing it for me."

	MsgNoteSavedFmt   = "Got it. I'll remember that. You now have %d %s."
	MsgNoteSaveFailed = "I couldn't save that note. Please try again."

	MsgNotesIntro = "Here's what you asked me to remember. "
	MsgNotesEmpty = "You don't have any notes yet. Just ask me to remember something."
	// appended when more notes exist than the composer reads out
	MsgNotesMoreFmt = " I'm tracking %d more."

	MsgCalcAnswerFmt  = "The answer is %s."
	MsgCalcFailureFmt = "I couldn't work that out because %s."
	MsgCalcDefaultErr = "invalid expression or unsupported characters"

	MsgEchoFmt  = "You said \"%s.\""
	MsgNotHeard = "I didn't catch that."
)

// Limits on how much the composer reads out per intent.
const (
	maxSearchSnippets = 2
	maxSummaryLen     = 400
	maxListedNotes    = 5
)
