package services

import (
	"strings"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// Suggestion prefixes. Queries reference contexts as "@office",
// projects as "#website" and tags as "+errand".
const (
	prefixContext = "@"
	prefixProject = "#"
	prefixTag     = "+"
)

// Suggest produces up to domain.MaxSuggestions completions for a
// partial query. Contexts come first, then projects, then tags;
// within a kind, prefix matches rank before substring matches.
// Matching is case-insensitive.
func (s *SearchService) Suggest(partial string, data domain.SuggestionData) []domain.Suggestion {
	partial = strings.ToLower(strings.TrimSpace(strings.TrimLeft(partial, prefixContext+prefixProject+prefixTag)))

	var out []domain.Suggestion
	add := func(name string, kind domain.SuggestionKind, prefix string) {
		if len(out) >= domain.MaxSuggestions {
			return
		}
		out = append(out, domain.Suggestion{Text: prefix + name, Kind: kind})
	}

	contexts := make([]string, 0, len(data.Contexts))
	for _, c := range data.Contexts {
		contexts = append(contexts, c.Name)
	}
	projects := make([]string, 0, len(data.Projects))
	for _, p := range data.Projects {
		projects = append(projects, p.Title)
	}

	for _, name := range rankMatches(contexts, partial) {
		add(name, domain.SuggestionContext, prefixContext)
	}
	for _, name := range rankMatches(projects, partial) {
		add(name, domain.SuggestionProject, prefixProject)
	}
	for _, name := range rankMatches(data.Tags, partial) {
		add(name, domain.SuggestionTag, prefixTag)
	}

	logger.Debug("Suggest %q: %d suggestions", partial, len(out))

	return out
}

// rankMatches returns the names matching partial, prefix matches
// first, preserving input order within each group. An empty partial
// matches everything.
func rankMatches(names []string, partial string) []string {
	if partial == "" {
		return names
	}

	var prefixed, contained []string
	for _, name := range names {
		lower := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lower, partial):
			prefixed = append(prefixed, name)
		case strings.Contains(lower, partial):
			contained = append(contained, name)
		}
	}

	return append(prefixed, contained...)
}
