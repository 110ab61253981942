package cli

import (
	"errors"
	"fmt"

	"github.com/Hamid-ijaz/mindmate/pkg/observability"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity of configured backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Health == nil {
			return errors.New("application not initialized - database connection required")
		}

		overall := app.Health.GetOverallHealth(cmd.Context())

		fmt.Printf("Overall: %s\n", overall.Status)
		for name, result := range overall.Checks {
			fmt.Printf("  %-10s %s", name, result.Status)
			if result.Message != "" {
				fmt.Printf(" - %s", result.Message)
			}
			fmt.Println()
		}

		if overall.Status == observability.HealthStatusUnhealthy {
			return errors.New("one or more components are unhealthy")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
