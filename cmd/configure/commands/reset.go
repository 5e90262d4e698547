package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskflow-app/taskflow/internal/store"
)

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear stored tasks and profile",
		Long:  "Remove the stored tasks and profile. The theme preference survives unless --all is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := st.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset store: %w", err)
			}
			fmt.Printf("Cleared tasks and profile from %s store\n", cfg.StoreBackend)

			if all {
				if g, ok := st.(*store.Gateway); ok {
					if err := g.KV().Delete(ctx, store.SlotTheme); err != nil {
						return fmt.Errorf("failed to clear theme: %w", err)
					}
					fmt.Println("Cleared theme preference")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also clear the theme preference")
	return cmd
}
