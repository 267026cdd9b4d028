// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/config"
	"github.com/vetta-dev/vetta/internal/history"
	"github.com/vetta-dev/vetta/internal/log"
	"github.com/vetta-dev/vetta/internal/session"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateHome ViewState = iota
	StateForm
	StateStarting // waiting for the server to create the interview
	StateInterview
	StateDashboard
	StateDetail
	StateAnalytics
	StateSimulation
)

// Tab represents the active tab in the TUI.
type Tab int

const (
	TabCandidate Tab = iota
	TabAdmin
)

// CandidateInfo holds the pre-interview form values.
type CandidateInfo struct {
	Name   string
	Email  string
	Mobile string
}

// Stats summarizes the interview listing for the analytics view.
type Stats struct {
	Total      int
	Completed  int
	Terminated int
	Active     int
}

// ComputeStats derives summary counts from the interview listing.
func ComputeStats(interviews []api.Interview) Stats {
	var s Stats
	s.Total = len(interviews)
	for _, iv := range interviews {
		switch iv.Status {
		case "completed":
			s.Completed++
		case "terminated":
			s.Terminated++
		default:
			s.Active++
		}
	}
	return s
}

// Model is the main TUI model that holds all application state.
type Model struct {
	// State management
	State     ViewState
	ActiveTab Tab
	Err       error

	// Configuration
	Cfg     *config.Config
	WorkDir string

	// Platform access
	Client     *api.Client
	Controller *session.Controller
	Logger     *log.Logger
	History    *history.Store

	// Live session state
	Candidate  CandidateInfo
	Proctor    session.ProctorState
	Transcript session.Transcript
	AttemptID  string // local history record for the running session

	// Admin state
	Interviews []api.Interview
	Simulation *session.Simulation

	// Shared components
	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a new Model with the given configuration and wiring.
func NewModel(cfg *config.Config, workDir string, client *api.Client, ctrl *session.Controller, logger *log.Logger, store *history.Store) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		State:      StateHome,
		ActiveTab:  TabCandidate,
		Cfg:        cfg,
		WorkDir:    workDir,
		Client:     client,
		Controller: ctrl,
		Logger:     logger,
		History:    store,

		Spinner: sp,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}
