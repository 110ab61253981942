package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var (
	suggestEnergy int
	suggestLimit  int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest what to work on next",
	Long: `Rank your open tasks by urgency and show the top picks.

The ranking weighs priority, due dates, the preferred time of day and
your current energy level.

Examples:
  mindmate suggest
  mindmate suggest --energy 80
  mindmate suggest --limit 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SmartSuggestionsHandler == nil {
			return errors.New("application not initialized - database connection required")
		}

		energy := suggestEnergy
		if energy < 0 {
			energy = app.EnergyLevel
		}
		limit := suggestLimit
		if limit <= 0 {
			limit = app.SuggestLimit
		}

		suggestions, err := app.SmartSuggestionsHandler.Handle(cmd.Context(), queries.SmartSuggestionsQuery{
			UserID:      app.CurrentUserID,
			EnergyLevel: energy,
			Limit:       limit,
		})
		if err != nil {
			return fmt.Errorf("failed to compute suggestions: %w", err)
		}

		if len(suggestions) == 0 {
			fmt.Println("Nothing to suggest - no open tasks.")
			return nil
		}

		fmt.Printf("Suggestions (energy %d):\n", energy)
		fmt.Println(strings.Repeat("-", 60))
		for i, s := range suggestions {
			fmt.Printf("%d. %s (score %d)\n", i+1, s.Task.Title, s.Score)
			fmt.Printf("   ID: %s\n", s.Task.ID.String()[:8])
			if s.Explanation != "" {
				fmt.Printf("   Why: %s\n", s.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestEnergy, "energy", "e", -1, "current energy level 0-100 (default: configured)")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "max suggestions to show")
	rootCmd.AddCommand(suggestCmd)
}
