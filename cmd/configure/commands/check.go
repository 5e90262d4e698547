package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/services/ai"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var probeAI bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check backend connectivity",
		Long:  "Verify that the configured store backend is reachable, and optionally probe the AI provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			fmt.Printf("Store backend: %s\n", cfg.StoreBackend)
			if err := st.Ping(ctx); err != nil {
				return fmt.Errorf("store ping failed: %w", err)
			}
			fmt.Println("✓ Store is reachable")

			if !probeAI {
				return nil
			}
			if cfg.OpenAIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not configured")
			}

			provider := ai.NewOpenAIProviderWithLogger(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, nil, false)
			fmt.Println("Probing AI provider with a sample breakdown request...")
			suggestion, err := provider.SuggestBreakdown(ctx, "Water the plants", models.TaskTypeDaily)
			if err != nil {
				return fmt.Errorf("AI probe failed: %w", err)
			}
			fmt.Printf("✓ AI provider responded: %q (%v %s, %s)\n",
				suggestion.Title, suggestion.Duration.Value, suggestion.Duration.Unit, suggestion.Priority)
			return nil
		},
	}

	cmd.Flags().BoolVar(&probeAI, "ai", false, "Also probe the AI suggestion provider")
	return cmd
}
