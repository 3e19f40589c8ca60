package parser

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/pagechunk/internal/extractor"
)

// PDFParser runs the layout-aware extractor over a PDF stream.
type PDFParser struct {
	Extractor *extractor.Extractor
}

func (p *PDFParser) Parse(ctx context.Context, r io.Reader, _ string) (string, error) {
	// The pdf library needs a seekable file, so spool the stream to disk.
	tmp, err := os.CreateTemp("", "pagechunk-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := p.Extractor.ExtractFile(ctx, tmpPath)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return text, nil
}
