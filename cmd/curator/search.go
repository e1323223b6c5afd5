package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/ranking"
	"github.com/jonathan/curriculum-curator/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search ranked resources for a topic",
	Long:  "Search videos and articles for a free-text topic and rank them by popularity, length, credibility and relevance.",
	RunE:  runSearch,
}

var (
	searchTopic   string
	searchLimit   int
	searchExplain bool
	searchOut     string
)

func init() {
	searchCmd.Flags().StringVarP(&searchTopic, "topic", "t", "", "Topic to search for (required)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum results (negative for all)")
	searchCmd.Flags().BoolVar(&searchExplain, "explain", false, "Print the score breakdown of each result")
	searchCmd.Flags().StringVarP(&searchOut, "out", "o", "", "Output JSON file (default stdout)")

	searchCmd.MarkFlagRequired("topic") //nolint:errcheck

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	req := types.SearchRequest{Topic: searchTopic}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid topic: %w", err)
	}
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.pipeline.SearchTopic(ctx, req.Topic)
	if err != nil {
		return err
	}
	result.Resources = ranking.Top(result.Resources, searchLimit)
	result.TotalResults = len(result.Resources)

	if searchExplain {
		stderr := cmd.ErrOrStderr()
		weights := cfg.Weights()
		for i := range result.Resources {
			r := &result.Resources[i]
			fmt.Fprintf(stderr, "%2d. %s: %s\n", i+1, r.Title, ranking.Describe(ranking.Explain(r, weights, nil)))
		}
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResources(result.Topic, result.Resources)
	}
	return writeOutput(cmd.OutOrStdout(), searchOut, result)
}
