// Package api is the HTTP client for the interview platform's REST surface.
// The server owns all interview logic; this package only moves JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyMessage is returned when a chat turn is blank after trimming.
var ErrEmptyMessage = errors.New("message must not be empty")

// Error is a non-success response from the server. Detail carries the
// server's human-readable explanation when the body provides one.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client talks to the interview platform API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL (e.g.
// "http://localhost:8000/api"). A zero timeout disables the client timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WebSocketURL converts an API path into the matching ws:// or wss://
// endpoint for the push channels.
func (c *Client) WebSocketURL(path string) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// already a websocket scheme
	default:
		return "", fmt.Errorf("base URL must use http(s) or ws(s), got %q", u.Scheme)
	}
	return u.String(), nil
}

// StartInterview creates a new interview session for the named candidate and
// returns the session id plus the interviewer's opening message.
func (c *Client) StartInterview(ctx context.Context, candidateName string) (*StartResult, error) {
	var result StartResult
	err := c.do(ctx, http.MethodPost, "/interview/start", StartRequest{CandidateName: candidateName}, &result)
	if err != nil {
		return nil, fmt.Errorf("starting interview: %w", err)
	}
	return &result, nil
}

// SendTurn submits one candidate message and waits for the interviewer's
// reply. The caller serializes turns; this method only validates the text.
func (c *Client) SendTurn(ctx context.Context, interviewID ID, text string) (*TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	var result TurnResult
	path := fmt.Sprintf("/interview/%s/chat", url.PathEscape(string(interviewID)))
	err := c.do(ctx, http.MethodPost, path, TurnRequest{Message: text}, &result)
	if err != nil {
		return nil, fmt.Errorf("sending turn: %w", err)
	}
	return &result, nil
}

// ListInterviews returns all interviews for the admin dashboard,
// newest first (server-ordered).
func (c *Client) ListInterviews(ctx context.Context) ([]Interview, error) {
	var result []Interview
	if err := c.do(ctx, http.MethodGet, "/interviews", nil, &result); err != nil {
		return nil, fmt.Errorf("listing interviews: %w", err)
	}
	return result, nil
}

// GetTranscript returns the stored chat history of one interview.
func (c *Client) GetTranscript(ctx context.Context, interviewID ID) ([]TranscriptEntry, error) {
	var result []TranscriptEntry
	path := fmt.Sprintf("/interview/%s/transcript", url.PathEscape(string(interviewID)))
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching transcript: %w", err)
	}
	return result, nil
}

// GetReport returns the generated evaluation report for one interview.
func (c *Client) GetReport(ctx context.Context, interviewID ID) (*Report, error) {
	var result Report
	path := fmt.Sprintf("/report/%s", url.PathEscape(string(interviewID)))
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching report: %w", err)
	}
	return &result, nil
}

// SubmitFeedback sends admin feedback about an interview.
func (c *Client) SubmitFeedback(ctx context.Context, interviewID ID, text string) (*Ack, error) {
	var result Ack
	req := FeedbackRequest{InterviewID: string(interviewID), FeedbackText: text}
	if err := c.do(ctx, http.MethodPost, "/feedback", req, &result); err != nil {
		return nil, fmt.Errorf("submitting feedback: %w", err)
	}
	return &result, nil
}

// RunSimulation triggers a batch agent-vs-agent simulation. Live results
// arrive on the simulation push channel; this call only returns an ack.
func (c *Client) RunSimulation(ctx context.Context) (*Ack, error) {
	var result Ack
	if err := c.do(ctx, http.MethodPost, "/simulation/run", nil, &result); err != nil {
		return nil, fmt.Errorf("running simulation: %w", err)
	}
	return &result, nil
}

// do performs one JSON round trip. Non-2xx responses decode the body's
// detail field into *Error; a missing detail falls back to the status code.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
