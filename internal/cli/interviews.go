// interviews.go implements the "vetta interviews" command listing interviews.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vetta-dev/vetta/internal/history"
	"github.com/vetta-dev/vetta/internal/report"
)

var interviewsLocal bool

var interviewsCmd = &cobra.Command{
	Use:   "interviews",
	Short: "List interviews, newest first",
	Long: `Display all interviews known to the server, newest first.
With --local, list interview attempts recorded on this machine instead.`,
	RunE: runInterviews,
}

func runInterviews(cmd *cobra.Command, args []string) error {
	if interviewsLocal {
		return runLocalInterviews()
	}

	client, _, err := clientFromWorkDir()
	if err != nil {
		return err
	}

	interviews, err := client.ListInterviews(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Print(report.FormatInterviews(interviews))
	return nil
}

func runLocalInterviews() error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	cfg := loadConfig(workDir)

	store, err := history.NewStore(filepath.Join(workDir, ".vetta", cfg.History.DBPath))
	if err != nil {
		return fmt.Errorf("opening local history: %w", err)
	}
	defer func() { _ = store.Close() }()

	attempts, err := store.ListAttempts(cfg.Admin.PageSize)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		fmt.Println("No local attempts recorded.")
		return nil
	}

	fmt.Printf("  %-8s  %-24s  %-12s  %-9s  %s\n", "ID", "CANDIDATE", "STATUS", "WARNINGS", "STARTED")
	for _, att := range attempts {
		fmt.Printf("  %-8s  %-24s  %-12s  %-9d  %s\n",
			att.InterviewID, att.Candidate, att.Status, att.Warnings,
			att.StartedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func init() {
	interviewsCmd.Flags().BoolVar(&interviewsLocal, "local", false, "List attempts recorded locally instead of asking the server")
}
