package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"triagem/internal/app"
	"triagem/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "triagem",
	Short: "Triagem email classification service",
	Long: `Triagem classifies Portuguese email texts as productive or unproductive
using a locally trained TF-IDF + linear model and generates reply suggestions
through a generative-language API.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE and wires the
	// shared application instance into the command context.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "version", "completion", "train":
			// train is a self-contained offline procedure and does not need
			// the loaded artifacts or a suggestion provider.
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Custom context key type to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}
