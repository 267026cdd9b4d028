package api

import (
	"encoding/json"
	"fmt"
)

// ID is an opaque interview identifier issued by the server. The wire format
// is a JSON number on current servers but the client never interprets it, so
// both numbers and strings are accepted.
type ID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("interview id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// StartRequest is the body for POST /interview/start.
type StartRequest struct {
	CandidateName string `json:"candidate_name"`
}

// StartResult is the server's reply to a start request: the opaque session
// identifier and the interviewer's opening message.
type StartResult struct {
	InterviewID ID     `json:"interviewId"`
	Message     string `json:"message"`
}

// TurnRequest is the body for POST /interview/{id}/chat.
type TurnRequest struct {
	Message string `json:"message"`
}

// TurnResult is one interviewer reply. Terminated reports that the server
// considers the interview over as of this turn.
type TurnResult struct {
	Message    string `json:"message"`
	Terminated bool   `json:"isTerminated"`
}

// Interview is one row in the admin listing, newest first.
type Interview struct {
	ID            ID     `json:"id"`
	CandidateName string `json:"candidate_name"`
	Status        string `json:"status"`
	Warnings      int    `json:"warnings"`
}

// TranscriptEntry is one stored utterance of a finished interview.
type TranscriptEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Report is the AI-generated evaluation of one interview.
type Report struct {
	Score      int    `json:"score"`
	Summary    string `json:"summary"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

// FeedbackRequest is the body for POST /feedback.
type FeedbackRequest struct {
	InterviewID  string `json:"interview_id"`
	FeedbackText string `json:"feedback_text"`
}

// Ack is a generic status/message acknowledgement.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
