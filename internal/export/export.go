// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/util"
)

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// IncludeMetadata adds a YAML front matter block.
	IncludeMetadata bool

	// IncludeTimestamps adds per-message times to transcripts.
	IncludeTimestamps bool

	// Now stamps file names and metadata. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		Now:               time.Now,
	}
}

func (o *Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportConversation writes a chat transcript and returns the file path.
func ExportConversation(msgs []model.Message, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	content, err := NewMarkdownExporter(opts).Conversation(msgs)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return WriteFile("chat", content, opts)
}

// ExportSummary writes a video summary and returns the file path.
func ExportSummary(title string, view model.SummaryView, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	content, err := NewMarkdownExporter(opts).Summary(title, view)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	name := "summary"
	if view.Preview != nil && view.Preview.Title != "" {
		name = "summary_" + view.Preview.Title
	}
	return WriteFile(name, content, opts)
}

// ExportGrammar writes a grammar check result and returns the file path.
func ExportGrammar(original, corrected string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	content, err := NewMarkdownExporter(opts).Grammar(original, corrected)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return WriteFile("grammar", content, opts)
}

// WriteFile stores content as <name>_<timestamp>.md in opts.OutputDir.
func WriteFile(name string, content []byte, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	filename := fmt.Sprintf("%s_%s.md", sanitizeFilename(name), opts.now().Format("20060102_150405"))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	runes := []rune(s)
	if len(runes) > 50 {
		runes = runes[:50]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			result = append(result, '_')
		case r < 32 || r == 127:
			result = append(result, '-')
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}
	if len(result) == 0 {
		return "export"
	}
	return string(result)
}
