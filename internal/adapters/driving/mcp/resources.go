package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for Nextact resources.
const uriScheme = "nextact://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent search queries, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "forecast",
		Name:        "forecast",
		Description: "Upcoming calendar items and due actions bucketed per day",
		MIMEType:    "application/json",
	}, s.handleForecastResource)
}

// handleHistoryResource returns the search history.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return emptyJSONResource(req.Params.URI), nil
	}

	type historyInfo struct {
		Query       string    `json:"query"`
		Timestamp   time.Time `json:"timestamp"`
		ResultCount int       `json:"result_count"`
		Hits        int       `json:"hits"`
	}

	entries := s.ports.History.History()
	infos := make([]historyInfo, len(entries))
	for i, entry := range entries {
		infos[i] = historyInfo{
			Query:       entry.Query,
			Timestamp:   entry.Timestamp,
			ResultCount: entry.ResultCount,
			Hits:        entry.Hits,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleForecastResource returns the coming week's commitments.
func (s *Server) handleForecastResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Forecast == nil {
		return emptyJSONResource(req.Params.URI), nil
	}

	forecast, err := s.ports.Forecast.Forecast(ctx, time.Now(), domain.DefaultForecastDays)
	if err != nil {
		return nil, fmt.Errorf("building forecast: %w", err)
	}

	type itemInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		When  string `json:"when,omitempty"`
	}
	type dayInfo struct {
		Date       string     `json:"date"`
		Calendar   []itemInfo `json:"calendar,omitempty"`
		DueActions []itemInfo `json:"due_actions,omitempty"`
	}
	type forecastInfo struct {
		Overdue []itemInfo `json:"overdue,omitempty"`
		Days    []dayInfo  `json:"days"`
	}

	info := forecastInfo{Days: make([]dayInfo, len(forecast.Days))}
	for _, action := range forecast.Overdue {
		info.Overdue = append(info.Overdue, itemInfo{
			ID: action.ID, Title: action.Title, When: action.DueDate.Format("2006-01-02"),
		})
	}
	for i, day := range forecast.Days {
		d := dayInfo{Date: day.Date.Format("2006-01-02")}
		for _, item := range day.Calendar {
			d.Calendar = append(d.Calendar, itemInfo{
				ID: item.ID, Title: item.Title, When: item.StartAt.Format(time.RFC3339),
			})
		}
		for _, action := range day.DueActions {
			d.DueActions = append(d.DueActions, itemInfo{ID: action.ID, Title: action.Title})
		}
		info.Days[i] = d
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling forecast: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// emptyJSONResource is returned when the backing port is absent.
func emptyJSONResource(uri string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     "[]",
		}},
	}
}
