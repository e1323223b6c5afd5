package main

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/curriculum-curator/internal/fetch"
	"github.com/jonathan/curriculum-curator/internal/ingestion"
	"github.com/jonathan/curriculum-curator/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract learning sections from a document",
	Long:  "Extract text from a PDF, Word, PowerPoint, HTML, text or image file (local or by URL), split it into sections and classify each one.",
	RunE:  runExtract,
}

var (
	extractFile     string
	extractURL      string
	extractOut      string
	extractTextOnly bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to the document")
	extractCmd.Flags().StringVarP(&extractURL, "url", "u", "", "URL to fetch the document from")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output JSON file (default stdout)")
	extractCmd.Flags().BoolVar(&extractTextOnly, "text-only", false, "Print the cleaned text instead of sections")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if extractFile == "" && extractURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if extractFile != "" && extractURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}
	ctx := cmd.Context()

	if extractTextOnly {
		return printCleanText(ctx, cmd)
	}

	data, mimeType, name, err := readDocument(ctx)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.pipeline.ProcessDocument(ctx, data, mimeType, name)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSections(result.OverallTopic, result.Sections)
	}
	return writeOutput(cmd.OutOrStdout(), extractOut, result)
}

func printCleanText(ctx context.Context, cmd *cobra.Command) error {
	var (
		text     string
		metadata *ingestion.Metadata
		err      error
	)
	if extractFile != "" {
		text, metadata, err = ingestion.IngestFromFile(extractFile)
	} else {
		text, metadata, err = ingestion.IngestFromURL(ctx, extractURL, nil)
	}
	if err != nil {
		return err
	}

	if verbose {
		if meta, err := metadata.ToJSON(); err == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), string(meta))
		}
	}
	if extractOut != "" {
		return os.WriteFile(extractOut, []byte(text), 0644)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// readDocument loads the raw document with its MIME type and file name.
func readDocument(ctx context.Context) ([]byte, string, string, error) {
	if extractFile != "" {
		data, err := os.ReadFile(extractFile)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to read file: %w", err)
		}
		name := filepath.Base(extractFile)
		return data, mime.TypeByExtension(filepath.Ext(name)), name, nil
	}

	result, err := fetch.URL(ctx, extractURL, nil)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to fetch document: %w", err)
	}
	name := ""
	if u, err := url.Parse(result.FinalURL); err == nil {
		name = path.Base(u.Path)
	}
	return result.Body, result.ContentType, name, nil
}
