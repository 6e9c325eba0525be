package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"triagem/internal/models"
)

// classifyCmd classifies the argument texts in one shot, without starting
// the server. Useful to sanity-check freshly trained artifacts.
var classifyCmd = &cobra.Command{
	Use:   "classify [text ...]",
	Short: "Classify one or more texts from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		results, err := appInstance.Pipeline.ProcessMessages(cmd.Context(), args)
		if err != nil {
			return err
		}

		for i, res := range results {
			label := res.Label.DisplayName()
			switch res.Label {
			case models.LabelProductive:
				label = color.GreenString(label)
			case models.LabelUnproductive:
				label = color.YellowString(label)
			}
			fmt.Printf("[%d] %s\n", i+1, label)
			if res.Skipped {
				fmt.Println("    processed: (skipped, message too short)")
			} else {
				fmt.Printf("    processed: %s\n", res.ProcessedText)
			}
			fmt.Printf("    suggestion: %s\n", res.Suggestion)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
