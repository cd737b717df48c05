package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

var captureNotes string

var captureCmd = &cobra.Command{
	Use:   "capture [thought]",
	Short: "Capture a thought into the inbox",
	Long: `Captures a thought into the inbox for later processing. Capture
is meant to be instant: no categorising, no scheduling, just get it
out of your head.`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().StringVar(&captureNotes, "notes", "", "extra detail to keep with the thought")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	if entityStore == nil {
		return errors.New("entity store not configured")
	}

	now := time.Now()
	item := &domain.InboxItem{
		ID:        uuid.NewString(),
		Title:     args[0],
		Notes:     captureNotes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx := cmd.Context()
	if err := entityStore.Save(ctx, item); err != nil {
		return fmt.Errorf("saving inbox item: %w", err)
	}

	// Keep the search index current.
	if searchService != nil {
		items, err := entityStore.List(ctx, domain.EntityTypeInbox)
		if err != nil {
			return fmt.Errorf("reloading inbox: %w", err)
		}
		searchService.UpdateIndex(domain.EntityTypeInbox, items)
	}

	cmd.Printf("Captured: %s\n", item.Title)
	return nil
}
