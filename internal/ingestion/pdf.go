package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

var (
	pdfStreamRe     = regexp.MustCompile(`stream\s*([\s\S]*?)\s*endstream`)
	pdfArrayShowRe  = regexp.MustCompile(`\[(.*?)\]\s*TJ`)
	pdfStringShowRe = regexp.MustCompile(`\((.*?)\)\s*Tj`)
	pdfLiteralRe    = regexp.MustCompile(`\((.*?)\)`)
	pdfParenRunRe   = regexp.MustCompile(`\(((?:[^()\\]|\\.){3,})\)`)
	letterPairRe    = regexp.MustCompile(`[a-zA-Z]{2,}`)
)

// extractPDFText reads the text layer with a structured parser.
func extractPDFText(data []byte) (string, error) {
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	textReader, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}

// extractPDFContentStreams decodes each page's content stream and reads its text operators.
// This handles compressed streams that the byte-level salvage cannot see.
func extractPDFContentStreams(data []byte) (string, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var pages []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil || len(content) == 0 {
			continue
		}
		if parts := textOperators(latin1(content)); len(parts) > 0 {
			pages = append(pages, strings.Join(parts, " "))
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// salvagePDF scans raw bytes for text-showing operators inside stream blocks and, failing
// that, for any parenthesized literal containing letters. It is lossy and never fails.
func salvagePDF(data []byte) (string, error) {
	raw := latin1(data)

	var parts []string
	for _, m := range pdfStreamRe.FindAllStringSubmatch(raw, -1) {
		parts = append(parts, textOperators(m[1])...)
	}

	if len(parts) == 0 {
		for _, m := range pdfParenRunRe.FindAllStringSubmatch(raw, -1) {
			text := unescapePDFLiteral(m[1])
			if letterPairRe.MatchString(text) {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, " "), nil
}

// textOperators pulls string operands of TJ (array) and Tj (single string) operators.
func textOperators(content string) []string {
	var parts []string
	for _, m := range pdfArrayShowRe.FindAllString(content, -1) {
		literals := pdfLiteralRe.FindAllStringSubmatch(m, -1)
		if len(literals) == 0 {
			continue
		}
		var sb strings.Builder
		for _, lit := range literals {
			sb.WriteString(lit[1])
		}
		parts = append(parts, sb.String())
	}
	for _, m := range pdfStringShowRe.FindAllString(content, -1) {
		if lit := pdfLiteralRe.FindStringSubmatch(m); lit != nil {
			parts = append(parts, lit[1])
		}
	}
	return parts
}

func unescapePDFLiteral(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\r`, "", `\(`, "(", `\)`, ")").Replace(s)
}

// latin1 maps every byte to the code point of the same value so byte-level scans never fail.
func latin1(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
