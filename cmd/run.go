package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run matching for all registered users once and print the report",
	Run: func(_ *cobra.Command, _ []string) {
		runOnce()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runOnce is the manual trigger. It shares the matching logic with the
// scheduled path.
func runOnce() {
	ctx := context.Background()

	logger, config := mustSetup()

	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}

	if comps.registry.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no users registered"))
		return
	}

	report := comps.runner.RunAll()

	fmt.Println(report.String())
}
