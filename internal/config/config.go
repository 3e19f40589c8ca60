package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Extraction
	HeaderThreshold float64 // fraction of pages a header/footer must recur on
	BandPx          int     // y-band size for header/footer recurrence
	ParagraphYGap   float64 // vertical jump that starts a new paragraph
	TableYTolerance float64 // y tolerance for table row grouping
	PageWorkers     int     // concurrent page span collection

	// Layout tool
	UseLayoutTool bool
	LayoutTimeout time.Duration

	// Chunking defaults
	MaxTokens     int
	OverlapTokens int
}

func Load() Config {
	cfg := Config{
		HeaderThreshold: envFloat("HEADER_THRESHOLD", 0.85),
		BandPx:          envInt("BAND_PX", 20),
		ParagraphYGap:   envFloat("PARAGRAPH_Y_GAP", 16),
		TableYTolerance: envFloat("TABLE_Y_TOLERANCE", 8),
		PageWorkers:     envInt("PAGE_WORKERS", 4),

		UseLayoutTool: envBool("USE_LAYOUT_TOOL", true),
		LayoutTimeout: envDuration("LAYOUT_TIMEOUT", 10*time.Second),

		MaxTokens:     envInt("MAX_TOKENS", 1350),
		OverlapTokens: envInt("OVERLAP_TOKENS", 150),
	}

	if cfg.HeaderThreshold <= 0 || cfg.HeaderThreshold > 1 {
		cfg.HeaderThreshold = 0.85
	}
	if cfg.BandPx <= 0 {
		cfg.BandPx = 20
	}
	if cfg.ParagraphYGap <= 0 {
		cfg.ParagraphYGap = 16
	}
	if cfg.TableYTolerance <= 0 {
		cfg.TableYTolerance = 8
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 4
	}
	if cfg.LayoutTimeout <= 0 {
		cfg.LayoutTimeout = 10 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1350
	}
	if cfg.OverlapTokens < 0 {
		cfg.OverlapTokens = 150
	}

	return cfg
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
