// Command pagechunk extracts readable plain text from born-digital PDFs
// (and other document formats) and re-segments it into token-bounded,
// context-annotated chunks for retrieval pipelines.
//
// Usage:
//
//	pagechunk [flags] input.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/pagechunk/internal/chunker"
	"github.com/dgallion1/pagechunk/internal/config"
	"github.com/dgallion1/pagechunk/internal/extractor"
	"github.com/dgallion1/pagechunk/internal/parser"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Load()

	var (
		outPath         = flag.String("o", "", "output path (default: stdout)")
		maxTokens       = flag.Int("max-tokens", cfg.MaxTokens, "chunk token budget")
		overlapTokens   = flag.Int("overlap", cfg.OverlapTokens, "overlap carried between chunks, in tokens")
		extractOnly     = flag.Bool("extract-only", false, "emit extracted text without chunking")
		noLayout        = flag.Bool("no-layout", false, "disable pdftotext -layout assist on dense pages")
		headerThreshold = flag.Float64("header-threshold", cfg.HeaderThreshold, "fraction of pages a header/footer must appear on to be removed")
		bandPx          = flag.Int("band-px", cfg.BandPx, "y-band size in points for header/footer recurrence")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pagechunk [flags] input")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	f, err := os.Open(input)
	if err != nil {
		log.Error("cannot open input", "file", input, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	ex := extractor.New(extractor.Config{
		HeaderThreshold: *headerThreshold,
		BandPx:          *bandPx,
		ParagraphYGap:   cfg.ParagraphYGap,
		TableYTolerance: cfg.TableYTolerance,
		UseLayoutTool:   cfg.UseLayoutTool && !*noLayout,
		LayoutTimeout:   cfg.LayoutTimeout,
		PageWorkers:     cfg.PageWorkers,
	}, log)

	p, err := parser.ForFile(input, parser.Options{Extractor: ex})
	if err != nil {
		log.Error("unsupported input", "file", input, "error", err)
		os.Exit(1)
	}

	text, err := p.Parse(context.Background(), f, filepath.Base(input))
	if err != nil {
		log.Error("extraction failed", "file", input, "error", err)
		os.Exit(1)
	}

	output := text
	if !*extractOnly {
		chunks := chunker.ChunkText(text, chunker.Config{
			MaxTokens:     *maxTokens,
			OverlapTokens: *overlapTokens,
		})
		log.Info("chunked document", "file", input, "chunks", len(chunks))
		output = chunker.Render(chunks)
	}

	if *outPath == "" {
		fmt.Println(output)
		return
	}
	if err := os.WriteFile(*outPath, []byte(output+"\n"), 0o644); err != nil {
		log.Error("cannot write output", "file", *outPath, "error", err)
		os.Exit(1)
	}
}
