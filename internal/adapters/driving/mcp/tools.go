package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"the search query to find tasks and other items"`
	Types      []string `json:"types,omitempty" jsonschema:"entity types to search: action, project, waiting, calendar, inbox (default all)"`
	Contexts   []string `json:"contexts,omitempty" jsonschema:"only items in these contexts"`
	Priorities []string `json:"priorities,omitempty" jsonschema:"only items with these priorities: low, medium, high"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	MatchedFields []string `json:"matched_fields,omitempty"`
	Score         float64  `json:"score"`
	Due           string   `json:"due,omitempty"`
}

// SuggestInput is the input schema for the suggest tool.
type SuggestInput struct {
	Partial string `json:"partial" jsonschema:"the partial query to complete"`
}

// SuggestOutput is the output schema for the suggest tool.
type SuggestOutput struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
}

// SuggestionOutput represents a single completion.
type SuggestionOutput struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search actions, projects, waiting items, calendar items and inbox notes",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest",
		Description: "Suggest query completions from known contexts (@), projects (#) and tags (+)",
	}, s.handleSuggest)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	opts := domain.SearchOptions{Limit: limit}
	for _, t := range input.Types {
		opts.Types = append(opts.Types, domain.EntityType(t))
	}
	opts.Filters.Contexts = input.Contexts
	for _, p := range input.Priorities {
		opts.Filters.Priorities = append(opts.Filters.Priorities, domain.Priority(p))
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("searching: %w", err)
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		entity := results[i].Entity
		out := SearchResultOutput{
			ID:            entity.EntityID(),
			Type:          string(results[i].Type),
			Title:         entityTitle(entity),
			MatchedFields: results[i].MatchedFields,
			Score:         results[i].Score,
		}
		if due := entity.Facets().Due; due != nil {
			out.Due = due.Format("2006-01-02")
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// handleSuggest handles the suggest tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	data, err := s.suggestionData(ctx)
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	suggestions := s.ports.Search.Suggest(input.Partial, data)

	output := SuggestOutput{
		Suggestions: make([]SuggestionOutput, len(suggestions)),
	}
	for i, suggestion := range suggestions {
		output.Suggestions[i] = SuggestionOutput{
			Text: suggestion.Text,
			Kind: string(suggestion.Kind),
		}
	}

	return nil, output, nil
}

// suggestionData gathers contexts, projects and tags from the entity
// store. Without a store, suggestions work over empty data.
func (s *Server) suggestionData(ctx context.Context) (domain.SuggestionData, error) {
	if s.ports.Entities == nil {
		return domain.SuggestionData{}, nil
	}

	contexts, err := s.ports.Entities.Contexts(ctx)
	if err != nil {
		return domain.SuggestionData{}, fmt.Errorf("loading contexts: %w", err)
	}

	collections, err := s.ports.Entities.Collections(ctx)
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

// entityTitle returns the entity's primary display text.
func entityTitle(entity domain.Searchable) string {
	fields := entity.SearchFields()
	if len(fields) == 0 || fields[0].Text == "" {
		return entity.EntityID()
	}
	return fields[0].Text
}
