// transcript.go implements the "vetta transcript" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/report"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript <interview-id>",
	Short: "Print the stored transcript of an interview",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscript,
}

func runTranscript(cmd *cobra.Command, args []string) error {
	client, _, err := clientFromWorkDir()
	if err != nil {
		return err
	}

	id := api.ID(args[0])
	entries, err := client.GetTranscript(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Print(report.FormatTranscript(id, entries))
	return nil
}
