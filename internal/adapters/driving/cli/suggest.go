package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial]",
	Short: "Suggest query completions",
	Long: `Suggests completions for a partial query, drawn from known
contexts (@), projects (#) and tags (+). Intended for shell
completion scripts and interactive frontends.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil || entityStore == nil {
		return errors.New("search service not configured")
	}

	data, err := suggestionData(cmd)
	if err != nil {
		return err
	}

	for _, s := range searchService.Suggest(args[0], data) {
		cmd.Println(s.Text)
	}
	return nil
}

// suggestionData gathers the reference data suggestions are drawn
// from: contexts, incomplete projects, and every tag in use.
func suggestionData(cmd *cobra.Command) (domain.SuggestionData, error) {
	ctx := cmd.Context()

	contexts, err := entityStore.Contexts(ctx)
	if err != nil {
		return domain.SuggestionData{}, fmt.Errorf("loading contexts: %w", err)
	}

	collections, err := entityStore.Collections(ctx)
	if err != nil {
		return domain.SuggestionData{}, fmt.Errorf("loading collections: %w", err)
	}

	data := domain.SuggestionData{
		Contexts: contexts,
		Projects: collections.Projects,
	}

	seen := make(map[string]bool)
	for _, entity := range collections.All() {
		for _, tag := range entity.Facets().Tags {
			if !seen[tag] {
				seen[tag] = true
				data.Tags = append(data.Tags, tag)
			}
		}
	}

	return data, nil
}
