package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okliver/jobwatch/internal/adzuna"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search available jobs and print up to 10 postings",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("query", "", "job title to search for")
	searchCmd.Flags().String("location", "", "free-text location")
	searchCmd.Flags().String("country", "", "country code (default from config)")
}

func search(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := mustSetup()

	comps, err := buildComponents(ctx, config, logger)
	if err != nil {
		logger.Fatal("building components", zap.Error(err))
	}

	query, err := flagOrPrompt(cmd, "query", "Job title")
	if err != nil {
		logger.Fatal("reading query", zap.Error(err))
	}

	location, err := flagOrPrompt(cmd, "location", "Location")
	if err != nil {
		logger.Fatal("reading location", zap.Error(err))
	}

	country := cmd.Flag("country").Value.String()
	if country == "" {
		prompt := promptui.Select{
			Label: "Country",
			Items: adzuna.Countries(),
		}
		if _, country, err = prompt.Run(); err != nil {
			logger.Fatal("selecting country", zap.Error(err))
		}
	}
	if !adzuna.IsSupportedCountry(country) {
		logger.Fatal("unsupported country code", zap.String("country", country))
	}

	result, err := comps.cache.Fetch(&adzuna.SearchParams{
		Query:    query,
		Location: location,
		Country:  country,
	})
	if err != nil {
		logger.Fatal("searching jobs", zap.Error(err))
	}

	fmt.Println(result.FormatTop(10))
}

func flagOrPrompt(cmd *cobra.Command, flag, label string) (string, error) {
	if value := cmd.Flag(flag).Value.String(); value != "" {
		return value, nil
	}

	prompt := promptui.Prompt{Label: label}
	return prompt.Run()
}
