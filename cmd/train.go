package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"triagem/internal/training"
)

var (
	trainDataset       string
	trainModelPath     string
	trainVectorizerOut string
)

// trainCmd fits the TF-IDF vectorizer and the classifier from a labeled CSV
// and writes both artifacts. One-shot offline procedure; the serve command
// picks the artifacts up on its next start.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier from a labeled CSV and save the model artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		color.Cyan("--- Starting model training for '%s' ---", trainDataset)

		report, err := training.Run(training.Options{
			DatasetPath:    trainDataset,
			VectorizerPath: trainVectorizerOut,
			ModelPath:      trainModelPath,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Trained on %d samples (%d-term vocabulary), evaluated on %d held-out samples.\n",
			report.TrainSamples, report.Vocabulary, report.TestSamples)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Class", "Precision", "Recall", "F1", "Support"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, m := range report.PerClass {
			table.Append([]string{
				m.Class,
				fmt.Sprintf("%.2f", m.Precision),
				fmt.Sprintf("%.2f", m.Recall),
				fmt.Sprintf("%.2f", m.F1),
				fmt.Sprintf("%d", m.Support),
			})
		}
		table.Append([]string{"accuracy", "", "", fmt.Sprintf("%.2f", report.Accuracy), fmt.Sprintf("%d", report.TestSamples)})
		table.Render()

		color.Green("Vectorizer saved to: %s", trainVectorizerOut)
		color.Green("Classifier saved to: %s", trainModelPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVar(&trainDataset, "dataset", "emails.csv", "Labeled CSV with 'text' and 'label' columns")
	trainCmd.Flags().StringVar(&trainModelPath, "model-out", "model.gob", "Output path for the classifier artifact")
	trainCmd.Flags().StringVar(&trainVectorizerOut, "vectorizer-out", "vectorizer.gob", "Output path for the vectorizer artifact")
}
