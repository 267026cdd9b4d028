// feedback.go implements the "vetta feedback" command.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vetta-dev/vetta/internal/api"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <interview-id> <text>...",
	Short: "Submit admin feedback about an interview",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFeedback,
}

func runFeedback(cmd *cobra.Command, args []string) error {
	client, _, err := clientFromWorkDir()
	if err != nil {
		return err
	}

	id := api.ID(args[0])
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return fmt.Errorf("feedback text must not be empty")
	}

	ack, err := client.SubmitFeedback(cmd.Context(), id, text)
	if err != nil {
		return err
	}

	if ack.Message != "" {
		fmt.Println(ack.Message)
	} else {
		fmt.Println("Feedback submitted.")
	}
	return nil
}
