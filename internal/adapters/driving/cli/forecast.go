package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearday-labs/nextact-cli/internal/core/domain"
)

var forecastDays int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show upcoming commitments per day",
	Long: `Shows calendar items and due actions bucketed per day over the
coming week, plus anything already overdue.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().IntVarP(&forecastDays, "days", "d", domain.DefaultForecastDays, "number of days to show")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	if forecastService == nil {
		return errors.New("forecast service not configured")
	}

	forecast, err := forecastService.Forecast(cmd.Context(), time.Now(), forecastDays)
	if err != nil {
		return fmt.Errorf("building forecast: %w", err)
	}

	if forecast.IsEmpty() {
		cmd.Println("Nothing scheduled or due.")
		return nil
	}

	if len(forecast.Overdue) > 0 {
		cmd.Println("Overdue:")
		for _, action := range forecast.Overdue {
			cmd.Printf("  ! %s (due %s)\n", action.Title, action.DueDate.Format("2006-01-02"))
		}
		cmd.Println()
	}

	for _, day := range forecast.Days {
		if len(day.Calendar) == 0 && len(day.DueActions) == 0 {
			continue
		}

		cmd.Printf("%s:\n", day.Date.Format("Mon 2006-01-02"))
		for _, item := range day.Calendar {
			cmd.Printf("  %s  %s\n", item.StartAt.Format("15:04"), item.Title)
		}
		for _, action := range day.DueActions {
			cmd.Printf("  due   %s\n", action.Title)
		}
		cmd.Println()
	}

	return nil
}
