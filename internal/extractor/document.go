package extractor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ledongthuc/pdf"
)

// Config controls extraction behavior.
type Config struct {
	HeaderThreshold float64       // fraction of pages a header/footer must recur on
	BandPx          int           // vertical band size for boilerplate recurrence
	ParagraphYGap   float64       // vertical jump that starts a new paragraph
	TableYTolerance float64       // vertical tolerance for table row grouping
	UseLayoutTool   bool          // allow pdftotext -layout assist on dense pages
	LayoutTimeout   time.Duration // per-invocation timeout for the layout tool
	PageWorkers     int           // concurrent page span collection
}

// DefaultConfig returns the extraction defaults.
func DefaultConfig() Config {
	return Config{
		HeaderThreshold: 0.85,
		BandPx:          20,
		ParagraphYGap:   16,
		TableYTolerance: 8,
		UseLayoutTool:   true,
		LayoutTimeout:   10 * time.Second,
		PageWorkers:     4,
	}
}

// Extractor converts a born-digital PDF into one normalized text string in
// reading order, with recurring headers/footers and hyphenation breaks
// removed.
type Extractor struct {
	cfg  Config
	log  *slog.Logger
	tool *LayoutTool
}

// New builds an Extractor. A nil logger discards; zero config fields fall
// back to defaults.
func New(cfg Config, log *slog.Logger) *Extractor {
	def := DefaultConfig()
	if cfg.HeaderThreshold <= 0 || cfg.HeaderThreshold > 1 {
		cfg.HeaderThreshold = def.HeaderThreshold
	}
	if cfg.BandPx <= 0 {
		cfg.BandPx = def.BandPx
	}
	if cfg.ParagraphYGap <= 0 {
		cfg.ParagraphYGap = def.ParagraphYGap
	}
	if cfg.TableYTolerance <= 0 {
		cfg.TableYTolerance = def.TableYTolerance
	}
	if cfg.LayoutTimeout <= 0 {
		cfg.LayoutTimeout = def.LayoutTimeout
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = def.PageWorkers
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Extractor{cfg: cfg, log: log}
	if cfg.UseLayoutTool {
		e.tool = DetectLayoutTool(cfg.LayoutTimeout)
	}
	return e
}

// ExtractFile extracts the document at path. The only fatal condition is an
// unreadable source: the PDF cannot be opened, or no span strategy yields
// text on any page. Everything else degrades per page.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("%s: pdf has no pages", filepath.Base(path))
	}

	pages, ok := collectDocument(spanStrategies, e.log, filepath.Base(path), func(strat spanStrategy) [][]Line {
		return e.collectPages(reader, numPages, strat)
	})
	if !ok {
		return "", fmt.Errorf("%s: no extractable text", filepath.Base(path))
	}

	return e.buildDocument(ctx, path, pages), nil
}

// collectDocument tries each span strategy over the whole document, in
// order, until one yields text on at least one page. Returns false when no
// strategy does; the document is unreadable.
func collectDocument(strategies []spanStrategy, log *slog.Logger, file string, run func(spanStrategy) [][]Line) ([][]Line, bool) {
	for _, strat := range strategies {
		pages := run(strat)
		if hasText(pages) {
			return pages, true
		}
		log.Warn("span strategy yielded no text", "strategy", strat.name, "file", file)
	}
	return nil, false
}

// collectPages runs span collection for every page under a bounded worker
// pool. Pages share no mutable state; each worker writes only its own slot.
func (e *Extractor) collectPages(reader *pdf.Reader, numPages int, strat spanStrategy) [][]Line {
	pages := make([][]Line, numPages)
	sem := make(chan struct{}, e.cfg.PageWorkers)
	var wg sync.WaitGroup

	for i := 0; i < numPages; i++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			p := reader.Page(i + 1)
			if p.V.IsNull() {
				return
			}
			pages[i] = strat.collect(p, pageHeight(p))
		}(i)
	}
	wg.Wait()
	return pages
}

// buildDocument is the post-collection phase: boilerplate masking is the
// synchronization barrier, then pages are assembled in order and the stream
// is dehyphenated and normalized.
func (e *Extractor) buildDocument(ctx context.Context, pdfPath string, pages [][]Line) string {
	mask := boilerplateMask(pages, e.cfg.HeaderThreshold, e.cfg.BandPx)

	var parts []string
	for i, lines := range pages {
		keep := lines[:0:0]
		for _, l := range lines {
			if !mask[lineKey(l, e.cfg.BandPx)] {
				keep = append(keep, l)
			}
		}
		if len(keep) == 0 {
			continue
		}
		if page := e.assemblePage(ctx, pdfPath, i, keep); page != "" {
			parts = append(parts, page)
		}
	}

	text := strings.Join(parts, "\n\n")
	text = dehyphenate(text)
	return Normalize(text)
}

// assemblePage turns one page's masked lines into text: detected tables
// first, then either the layout tool's rendering (dense pages, tool present)
// or column-ordered paragraphs.
func (e *Extractor) assemblePage(ctx context.Context, pdfPath string, pageIndex int, lines []Line) string {
	tables, remaining := detectTables(lines, e.cfg.TableYTolerance)

	content := make([]string, 0, len(tables)+1)
	content = append(content, tables...)

	if len(remaining) > 0 {
		if e.tool != nil && (looksTabularOrDense(remaining) || hasTableKeywords(remaining)) {
			laid, err := e.tool.PageText(ctx, pdfPath, pageIndex+1)
			if err != nil {
				e.log.Warn("layout tool failed, using paragraph path", "page", pageIndex+1, "error", err)
			} else if laid != "" {
				content = append(content, laid)
				return strings.TrimSpace(strings.Join(content, "\n\n"))
			}
		}
		ordered := orderByColumns(remaining)
		for _, p := range linesToParagraphs(ordered, e.cfg.ParagraphYGap) {
			if p = Normalize(p); p != "" {
				content = append(content, p)
			}
		}
	}
	return strings.TrimSpace(strings.Join(content, "\n\n"))
}

func hasText(pages [][]Line) bool {
	for _, lines := range pages {
		for _, l := range lines {
			if strings.TrimSpace(l.Text) != "" {
				return true
			}
		}
	}
	return false
}
