package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/log"
	"github.com/vetta-dev/vetta/internal/session"
	"github.com/vetta-dev/vetta/internal/tui"
)

// StartSimulationCmd triggers a batch simulation run and opens its channel.
func StartSimulationCmd(client *api.Client, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		sim, err := session.StartSimulation(context.Background(), client, logger)
		if err != nil {
			return tui.SimulationStartErrorMsg{Err: err}
		}
		return tui.SimulationStartedMsg{Sim: sim}
	}
}

// ListenSimulationCmd polls the simulation channel for streamed turns.
func ListenSimulationCmd(sim *session.Simulation) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-sim.Events():
			if !ok {
				return tui.SimulationDrainedMsg{}
			}
			return tui.SimulationEventMsg{Event: ev}
		case <-time.After(100 * time.Millisecond):
			return tui.SimulationTickMsg{}
		}
	}
}
