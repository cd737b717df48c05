package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyPopularLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `Shows the search history, most recent first. Repeated queries
keep a single entry with a hit counter.`,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire search history",
	RunE:  runHistoryClear,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove [query]",
	Short: "Delete one query from the history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Show the most repeated searches",
	RunE:  runHistoryPopular,
}

func init() {
	historyPopularCmd.Flags().IntVarP(&historyPopularLimit, "limit", "n", 5, "maximum number of queries")
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyPopularCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries := historyService.History()
	if len(entries) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("  %s  %s (%d results)\n",
			entry.Timestamp.Format("2006-01-02 15:04"), entry.Query, entry.ResultCount)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	historyService.Clear(cmd.Context())
	cmd.Println("Search history cleared.")
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	historyService.Remove(cmd.Context(), args[0])
	return nil
}

func runHistoryPopular(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	popular := historyService.Popular(historyPopularLimit)
	if len(popular) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	for i, p := range popular {
		cmd.Printf("  [%d] %s (%d)\n", i+1, p.Query, p.Count)
	}
	return nil
}
