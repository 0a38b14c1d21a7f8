package dto

type AgentRequest struct {
	Transcript string `json:"transcript" validate:"max=4000"`
}

type AgentResponse struct {
	Text           string      `json:"text"`
	Intent         string      `json:"intent"`
	ToolResult     interface{} `json:"tool_result"`
	Truncated      bool        `json:"truncated"`
	ContinuationID string      `json:"continuation_id,omitempty"`
}

type ContinueRequest struct {
	ContinuationID string `json:"continuation_id" validate:"required"`
}

type ASRResponse struct {
	Transcript string `json:"transcript"`
}

type TTSRequest struct {
	Text string `json:"text" validate:"max=4000"`
}

// NoteActivityMessage is the watermill payload published after a note save.
type NoteActivityMessage struct {
	Note  string `json:"note"`
	Count int    `json:"count"`
}
