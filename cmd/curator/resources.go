package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/pipeline"
	"github.com/jonathan/curriculum-curator/internal/types"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Find learning resources for sections",
	Long:  "Read sections (the output of extract or curriculum) and find ranked videos, articles, a theory explanation and a summary for each.",
	RunE:  runResources,
}

var (
	resourcesIn  string
	resourcesOut string
)

func init() {
	resourcesCmd.Flags().StringVarP(&resourcesIn, "in", "i", "", "JSON file with a \"sections\" array (required)")
	resourcesCmd.Flags().StringVarP(&resourcesOut, "out", "o", "", "Output JSON file (default stdout)")

	resourcesCmd.MarkFlagRequired("in") //nolint:errcheck

	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(resourcesIn)
	if err != nil {
		return fmt.Errorf("failed to read sections file: %w", err)
	}
	var req types.SectionResourcesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse sections file: %w", err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid sections: %w", err)
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

	if cfg.Verbose {
		stderr := cmd.ErrOrStderr()
		var mu sync.Mutex
		a.pipeline.OnProgress = func(e pipeline.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(stderr, "[%s] %s\n", e.Step, e.Message)
		}
	}

	resolved, err := a.pipeline.ResolveSections(ctx, req.Sections)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSectionResources(req.Sections, resolved)
	}
	return writeOutput(cmd.OutOrStdout(), resourcesOut, types.SectionResourcesResponse{SectionResources: resolved})
}
