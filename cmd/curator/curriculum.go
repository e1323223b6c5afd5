package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/curriculum-curator/internal/ingestion"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/types"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Generate a curriculum for a topic or document",
	Long:  "Ask the language model for a structured sequence of learning sections covering a topic, or restructure a document into one.",
	RunE:  runCurriculum,
}

var (
	curriculumTopic string
	curriculumFile  string
	curriculumOut   string
)

func init() {
	curriculumCmd.Flags().StringVarP(&curriculumTopic, "topic", "t", "", "Topic to build a curriculum for")
	curriculumCmd.Flags().StringVarP(&curriculumFile, "file", "f", "", "Document to restructure into a curriculum")
	curriculumCmd.Flags().StringVarP(&curriculumOut, "out", "o", "", "Output JSON file (default stdout)")

	rootCmd.AddCommand(curriculumCmd)
}

func runCurriculum(cmd *cobra.Command, _ []string) error {
	if curriculumTopic == "" && curriculumFile == "" {
		return fmt.Errorf("either --topic or --file must be provided")
	}
	if curriculumTopic != "" && curriculumFile != "" {
		return fmt.Errorf("--topic and --file are mutually exclusive; provide only one")
	}
	if curriculumTopic != "" {
		req := types.CurriculumRequest{Topic: curriculumTopic}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("invalid topic: %w", err)
		}
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

	if a.generator == nil {
		return fmt.Errorf("GEMINI_API_KEY is required for curriculum generation")
	}

	var result *types.Curriculum
	if curriculumTopic != "" {
		result, err = a.generator.FromTopic(ctx, curriculumTopic)
	} else {
		var text string
		text, _, err = ingestion.IngestFromFile(curriculumFile)
		if err != nil {
			return err
		}
		result, err = a.generator.FromDocument(ctx, text, filepath.Base(curriculumFile))
	}
	if err != nil {
		return fmt.Errorf("failed to generate curriculum: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSections(result.OverallTopic, result.Sections)
	}
	return writeOutput(cmd.OutOrStdout(), curriculumOut, result)
}
