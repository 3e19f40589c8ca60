package parser

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagechunk/internal/extractor"
)

// Parser converts raw document bytes into plain text suitable for the
// chunker: headings on their own lines, paragraphs separated by blank lines,
// tables as pipe-delimited rows.
type Parser interface {
	Parse(ctx context.Context, r io.Reader, filename string) (string, error)
}

// Options carries the pieces format adapters need.
type Options struct {
	Extractor *extractor.Extractor // used for .pdf inputs; nil means defaults
}

// SupportedExtensions lists file extensions this module can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		ex := opts.Extractor
		if ex == nil {
			ex = extractor.New(extractor.DefaultConfig(), nil)
		}
		return &PDFParser{Extractor: ex}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
