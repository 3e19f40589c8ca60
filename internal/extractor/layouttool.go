package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// LayoutTool wraps the optional pdftotext binary, used for layout-preserving
// rendering of pages too dense for paragraph assembly. It is detected before
// use and treated as swappable; every invocation is time-bounded.
type LayoutTool struct {
	path    string
	timeout time.Duration
}

// DetectLayoutTool looks for pdftotext on PATH. Returns nil when absent;
// callers fall back to the normal paragraph path.
func DetectLayoutTool(timeout time.Duration) *LayoutTool {
	path, err := exec.LookPath("pdftotext")
	if err != nil {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LayoutTool{path: path, timeout: timeout}
}

// PageText renders a single page (1-based) of the PDF at pdfPath with layout
// preserved. Output goes through a temp file because pdftotext writes to a
// path, not a pipe, when given page ranges.
func (t *LayoutTool) PageText(ctx context.Context, pdfPath string, page int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := os.CreateTemp("", "pagechunk-layout-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, t.path,
		"-layout",
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		pdfPath, outPath)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read layout output: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
