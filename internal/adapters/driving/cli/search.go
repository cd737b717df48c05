package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

var (
	searchLimit      int
	searchJSON       bool
	searchHighlight  bool
	searchTypes      []string
	searchContexts   []string
	searchPriorities []string
	searchDueAfter   string
	searchDueBefore  string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search actions, projects and other items",
	Long: `Searches every collection with typo-tolerant fuzzy matching.
Exact matches rank first, then matches containing all query words,
then fuzzy matches.

Results can be narrowed by entity type, context, priority and due
date. All filters combine with AND semantics.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchHighlight, "highlight", false, "mark query terms in matched text")
	searchCmd.Flags().StringSliceVarP(&searchTypes, "type", "t", nil, "entity types to search (action, project, waiting, calendar, inbox)")
	searchCmd.Flags().StringSliceVar(&searchContexts, "context", nil, "only items in these contexts")
	searchCmd.Flags().StringSliceVar(&searchPriorities, "priority", nil, "only items with these priorities (low, medium, high)")
	searchCmd.Flags().StringVar(&searchDueAfter, "due-after", "", "only items due on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchDueBefore, "due-before", "", "only items due on or before this date (YYYY-MM-DD)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit: searchLimit,
	}

	for _, t := range searchTypes {
		opts.Types = append(opts.Types, domain.EntityType(t))
	}

	opts.Filters.Contexts = searchContexts
	priorities, err := parsePriorities(searchPriorities)
	if err != nil {
		return err
	}
	opts.Filters.Priorities = priorities

	dateRange, err := parseDateRange(searchDueAfter, searchDueBefore)
	if err != nil {
		return err
	}
	opts.Filters.DateRange = dateRange

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, query, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		title := resultTitle(result.Entity)
		if searchHighlight {
			title = searchService.Highlight(title, query)
		}

		cmd.Printf("  [%d] %s  (%s)\n", i+1, title, result.Type)
		if len(result.MatchedFields) > 0 {
			cmd.Printf("      Matched: %s\n", strings.Join(result.MatchedFields, ", "))
		}
		if due := result.Entity.Facets().Due; due != nil {
			cmd.Printf("      Due: %s\n", due.Format("2006-01-02"))
		}
		cmd.Println()
	}

	return nil
}

// resultTitle returns the entity's primary display text.
func resultTitle(entity domain.Searchable) string {
	fields := entity.SearchFields()
	if len(fields) == 0 || fields[0].Text == "" {
		return entity.EntityID()
	}
	return fields[0].Text
}

// parsePriorities validates and converts priority flag values.
func parsePriorities(values []string) ([]domain.Priority, error) {
	var priorities []domain.Priority
	for _, v := range values {
		switch p := domain.Priority(strings.ToLower(v)); p {
		case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
			priorities = append(priorities, p)
		default:
			return nil, fmt.Errorf("invalid priority %q (expected low, medium or high)", v)
		}
	}
	return priorities, nil
}

// parseDateRange builds an inclusive due-date range from the flag
// values. An open end defaults to the far past or far future.
func parseDateRange(after, before string) (*domain.DateRange, error) {
	if after == "" && before == "" {
		return nil, nil
	}

	r := &domain.DateRange{
		Start: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	if after != "" {
		t, err := time.Parse("2006-01-02", after)
		if err != nil {
			return nil, fmt.Errorf("invalid --due-after date %q: %w", after, err)
		}
		r.Start = t
	}

	if before != "" {
		t, err := time.Parse("2006-01-02", before)
		if err != nil {
			return nil, fmt.Errorf("invalid --due-before date %q: %w", before, err)
		}
		// Inclusive through the end of the named day.
		r.End = t.Add(24*time.Hour - time.Nanosecond)
	}

	return r, nil
}
