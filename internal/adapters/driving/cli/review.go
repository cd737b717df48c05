package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List projects due for review",
	Long: `Lists incomplete projects whose review interval has elapsed.
Projects that have never been reviewed come first.`,
	RunE: runReview,
}

var reviewDoneCmd = &cobra.Command{
	Use:   "done [project-id]",
	Short: "Mark a project as reviewed",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewDone,
}

func init() {
	reviewCmd.AddCommand(reviewDoneCmd)
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	due, err := reviewService.DueForReview(cmd.Context(), time.Now())
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	if len(due) == 0 {
		cmd.Println("No projects due for review.")
		return nil
	}

	cmd.Println("Due for review:")
	for _, p := range due {
		last := "never"
		if !p.LastReviewedAt.IsZero() {
			last = p.LastReviewedAt.Format("2006-01-02")
		}
		cmd.Printf("  %s  %s (last reviewed %s)\n", p.ID, p.Title, last)
	}
	return nil
}

func runReviewDone(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	if err := reviewService.MarkReviewed(cmd.Context(), args[0], time.Now()); err != nil {
		return fmt.Errorf("marking project reviewed: %w", err)
	}

	cmd.Printf("Project %s marked reviewed.\n", args[0])
	return nil
}
