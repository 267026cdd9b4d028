package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestStartInterview(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/interview/start" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.CandidateName != "Dana" {
			t.Errorf("candidate_name = %q, want Dana", req.CandidateName)
		}
		// Servers issue numeric ids; the client must treat them as opaque.
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"interviewId": 42, "message": "Hello Dana"}`)); err != nil {
			t.Fatalf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	result, err := client.StartInterview(context.Background(), "Dana")
	if err != nil {
		t.Fatalf("StartInterview failed: %v", err)
	}
	if result.InterviewID != "42" {
		t.Errorf("InterviewID = %q, want 42", result.InterviewID)
	}
	if result.Message != "Hello Dana" {
		t.Errorf("Message = %q, want Hello Dana", result.Message)
	}
}

func TestSendTurn(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/interview/42/chat" {
			t.Errorf("path = %q, want /interview/42/chat", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TurnResult{Message: "Hi Dana", Terminated: false})
	}))
	defer srv.Close()

	result, err := client.SendTurn(context.Background(), "42", "My name is Dana")
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if result.Message != "Hi Dana" || result.Terminated {
		t.Errorf("result = %+v, want Hi Dana / not terminated", result)
	}
}

func TestSendTurnRejectsEmptyMessage(t *testing.T) {
	client := NewClient("http://localhost:1", time.Second)

	_, err := client.SendTurn(context.Background(), "42", "   ")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestErrorDetailField(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Interview not found or has no messages."}`))
	}))
	defer srv.Close()

	_, err := client.GetTranscript(context.Background(), "99")
	if err == nil {
		t.Fatal("GetTranscript should fail on 404")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.Error", err)
	}
	if apiErr.Detail != "Interview not found or has no messages." {
		t.Errorf("Detail = %q, want server detail", apiErr.Detail)
	}
}

func TestErrorWithoutDetailUsesStatus(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.ListInterviews(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.Error", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
	if apiErr.Error() != "server returned status 502" {
		t.Errorf("Error() = %q, want status-derived message", apiErr.Error())
	}
}

func TestListInterviews(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 2, "candidate_name": "Priya Sharma", "status": "completed", "warnings": 0},
			{"id": 1, "candidate_name": "Rahul Kumar", "status": "terminated", "warnings": 3}
		]`))
	}))
	defer srv.Close()

	interviews, err := client.ListInterviews(context.Background())
	if err != nil {
		t.Fatalf("ListInterviews failed: %v", err)
	}
	if len(interviews) != 2 {
		t.Fatalf("got %d interviews, want 2", len(interviews))
	}
	if interviews[0].ID != "2" || interviews[0].CandidateName != "Priya Sharma" {
		t.Errorf("first interview = %+v", interviews[0])
	}
	if interviews[1].Warnings != 3 {
		t.Errorf("second interview warnings = %d, want 3", interviews[1].Warnings)
	}
}

func TestWebSocketURL(t *testing.T) {
	client := NewClient("https://interviews.example.com/api", 0)

	got, err := client.WebSocketURL("/ws/proctoring/42")
	if err != nil {
		t.Fatalf("WebSocketURL failed: %v", err)
	}
	want := "wss://interviews.example.com/api/ws/proctoring/42"
	if got != want {
		t.Errorf("WebSocketURL = %q, want %q", got, want)
	}

	client = NewClient("http://localhost:8000/api", 0)
	got, err = client.WebSocketURL("/ws/simulation")
	if err != nil {
		t.Fatalf("WebSocketURL failed: %v", err)
	}
	if got != "ws://localhost:8000/api/ws/simulation" {
		t.Errorf("WebSocketURL = %q", got)
	}
}
