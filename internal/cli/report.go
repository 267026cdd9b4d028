// report.go implements the "vetta report" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <interview-id>",
	Short: "Print the evaluation report of an interview",
	Long: `Fetch and print the AI-generated evaluation report for a finished
interview: score, summary, strengths and weaknesses.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	client, _, err := clientFromWorkDir()
	if err != nil {
		return err
	}

	id := api.ID(args[0])
	rep, err := client.GetReport(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Print(report.FormatReport(id, rep))
	return nil
}
