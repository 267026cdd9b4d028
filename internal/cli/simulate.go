// simulate.go implements the "vetta simulate" command streaming a
// simulation run to stdout.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vetta-dev/vetta/internal/log"
	"github.com/vetta-dev/vetta/internal/session"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an agent-vs-agent simulation and stream the transcript",
	Long: `Trigger a batch simulation where an AI candidate takes the interview,
then stream the live transcript until the run completes.`,
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	client, _, err := clientFromWorkDir()
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	logger, err := log.NewLogger(workDir)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	sim, err := session.StartSimulation(cmd.Context(), client, logger)
	if err != nil {
		return err
	}
	defer sim.Close()

	fmt.Println("Simulation started, waiting for turns...")

	for ev := range sim.Events() {
		if !sim.Apply(ev) {
			continue
		}
		switch ev := ev.(type) {
		case session.SimTurnEvent:
			marker := ">"
			if session.ClassifySender(ev.Sender) == session.RoleCandidate {
				marker = "<"
			}
			fmt.Printf("%s %s: %s\n", marker, ev.Sender, ev.Text)
		case session.SimCompleteEvent:
			fmt.Printf("\n%s\n", ev.Message)
		case session.SimErrorEvent:
			return fmt.Errorf("simulation failed: %s", ev.Message)
		}
		if !sim.Live {
			break
		}
	}

	if sim.Failed {
		return fmt.Errorf("simulation failed: %s", sim.Notice)
	}
	return nil
}
