package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var syncDeadLimit int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect and drive the backend sync queue",
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync queue counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SyncQueueRepo == nil {
			return errors.New("sync requires database connection")
		}

		stats, err := app.SyncQueueRepo.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read queue stats: %w", err)
		}

		fmt.Println("Sync queue:")
		fmt.Printf("  pending:    %d\n", stats.Pending)
		fmt.Printf("  dispatched: %d\n", stats.Dispatched)
		fmt.Printf("  dead:       %d\n", stats.Dead)

		if app.SyncProcessor != nil {
			ps := app.SyncProcessor.Stats()
			fmt.Println("Processor (this session):")
			fmt.Printf("  processed:  %d\n", ps.Processed)
			fmt.Printf("  dispatched: %d\n", ps.Dispatched)
			fmt.Printf("  failed:     %d\n", ps.Failed)
			fmt.Printf("  dead:       %d\n", ps.Dead)
			fmt.Printf("  running:    %v\n", app.SyncProcessor.IsRunning())
		}
		return nil
	},
}

var syncFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Dispatch one batch of pending events now",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SyncProcessor == nil {
			return errors.New("sync requires database connection")
		}

		before, err := app.SyncQueueRepo.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read queue stats: %w", err)
		}
		if before.Pending == 0 {
			fmt.Println("Nothing to flush.")
			return nil
		}

		if err := app.SyncProcessor.ProcessOnce(cmd.Context()); err != nil {
			return fmt.Errorf("flush failed: %w", err)
		}

		after, err := app.SyncQueueRepo.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read queue stats: %w", err)
		}
		fmt.Printf("Flushed: %d pending before, %d pending after.\n", before.Pending, after.Pending)
		return nil
	},
}

var syncDeadCmd = &cobra.Command{
	Use:   "dead",
	Short: "List dead-lettered events",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SyncQueueRepo == nil {
			return errors.New("sync requires database connection")
		}

		messages, err := app.SyncQueueRepo.GetDead(cmd.Context(), syncDeadLimit)
		if err != nil {
			return fmt.Errorf("failed to list dead letters: %w", err)
		}

		if len(messages) == 0 {
			fmt.Println("No dead-lettered events.")
			return nil
		}

		fmt.Printf("Dead letters (%d):\n", len(messages))
		fmt.Println(strings.Repeat("-", 60))
		for _, m := range messages {
			fmt.Printf("#%d %s (%s)\n", m.ID, m.RoutingKey, m.AggregateID.String()[:8])
			fmt.Printf("   queued: %s\n", m.CreatedAt.Format(time.RFC3339))
			if m.DeadLetteredAt != nil {
				fmt.Printf("   dead:   %s\n", m.DeadLetteredAt.Format(time.RFC3339))
			}
			if m.DeadReason != nil {
				fmt.Printf("   reason: %s\n", *m.DeadReason)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	syncDeadCmd.Flags().IntVarP(&syncDeadLimit, "limit", "n", 20, "max dead letters to show")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncFlushCmd)
	syncCmd.AddCommand(syncDeadCmd)
	rootCmd.AddCommand(syncCmd)
}
