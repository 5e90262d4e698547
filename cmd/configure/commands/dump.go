package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// NewDumpCmd creates the dump command
func NewDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump stored data as JSON",
		Long:  "Print the stored tasks, profile, and theme as a single JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			tasks, err := st.LoadTasks(ctx)
			if err != nil {
				return fmt.Errorf("failed to load tasks: %w", err)
			}
			profile, err := st.LoadProfile(ctx)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}
			theme, err := st.LoadTheme(ctx)
			if err != nil {
				return fmt.Errorf("failed to load theme: %w", err)
			}

			out := map[string]any{
				"tasks":   tasks,
				"profile": profile,
				"theme":   theme,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	return cmd
}
