package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	wordTextRe    = regexp.MustCompile(`<w:t[^>]*>(.*?)</w:t>`)
	slideTextRe   = regexp.MustCompile(`<a:t>(.*?)</a:t>`)
	slideBodyRe   = regexp.MustCompile(`<p:txBody[^>]*>([\s\S]*?)</p:txBody>`)
	markupTagRe   = regexp.MustCompile(`<[^>]*>`)
	nonPrintingRe = regexp.MustCompile(`[^\x20-\x7E\n\r\t]`)
	slideNameRe   = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
)

var errNoDocumentPart = errors.New("document part not found")

// extractDOCX reads word/document.xml from the package and walks its runs.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX package: %w", err)
	}

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return readOOXMLText(f)
		}
	}
	return "", errNoDocumentPart
}

// extractPPTXSlides reads every ppt/slides/slideN.xml in slide order.
func extractPPTXSlides(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PPTX package: %w", err)
	}

	type slide struct {
		n int
		f *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		if m := slideNameRe.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			slides = append(slides, slide{n: n, f: f})
		}
	}
	if len(slides) == 0 {
		return "", errNoDocumentPart
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	texts := make([]string, 0, len(slides))
	for _, s := range slides {
		text, err := readOOXMLText(s.f)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n\n"), nil
}

// readOOXMLText concatenates <*:t> character data, breaking lines at paragraph ends.
func readOOXMLText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	dec := xml.NewDecoder(rc)
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// scanWordTextTags pulls <w:t> runs straight from the raw bytes.
func scanWordTextTags(data []byte) (string, error) {
	raw := strings.ToValidUTF8(string(data), "")
	var parts []string
	for _, m := range wordTextRe.FindAllStringSubmatch(raw, -1) {
		if strings.TrimSpace(m[1]) != "" {
			parts = append(parts, m[1])
		}
	}
	return strings.Join(parts, " "), nil
}

// scanSlideTags pulls <a:t> runs and <p:txBody> blocks straight from the raw bytes.
func scanSlideTags(data []byte) (string, error) {
	raw := strings.ToValidUTF8(string(data), "")
	var parts []string
	for _, m := range slideTextRe.FindAllStringSubmatch(raw, -1) {
		if strings.TrimSpace(m[1]) != "" {
			parts = append(parts, m[1])
		}
	}
	for _, m := range slideBodyRe.FindAllStringSubmatch(raw, -1) {
		if inner := strings.TrimSpace(markupTagRe.ReplaceAllString(m[1], " ")); inner != "" {
			parts = append(parts, inner)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// stripMarkup is the last resort for markup formats: drop tags and anything non-printable.
func stripMarkup(data []byte) (string, error) {
	raw := strings.ToValidUTF8(string(data), " ")
	raw = markupTagRe.ReplaceAllString(raw, " ")
	return nonPrintingRe.ReplaceAllString(raw, " "), nil
}
