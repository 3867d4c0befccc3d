// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/mmq-tui/internal/model"
)

// Errors returned when there is nothing worth exporting.
var (
	ErrEmptyConversation = errors.New("conversation has no messages from you yet")
	ErrNoSummary         = errors.New("there is no summary to export")
	ErrNoResult          = errors.New("there is no result to export")
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders screen content as Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Conversation renders a chat transcript. A log holding only the greeting
// is ErrEmptyConversation.
func (e *MarkdownExporter) Conversation(msgs []model.Message) ([]byte, error) {
	hasUser := false
	for _, m := range msgs {
		if m.IsUser() {
			hasUser = true
			break
		}
	}
	if !hasUser {
		return nil, ErrEmptyConversation
	}

	var sb strings.Builder
	e.writeFrontMatter(&sb, "Multi-Modal Query", "chat", map[string]string{
		"messages": fmt.Sprintf("%d", len(msgs)),
	})
	sb.WriteString("# Multi-Modal Query\n\n")

	for i, msg := range msgs {
		label := msg.Role.DisplayName()
		if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, msg.Timestamp.Format("15:04:05"))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}
		if msg.HasImage() {
			fmt.Fprintf(&sb, "*Image: `%s`*\n\n", msg.Image)
		}
		if content := strings.TrimSpace(msg.Content); content != "" {
			sb.WriteString(content)
			sb.WriteString("\n\n")
		}
		if i < len(msgs)-1 {
			sb.WriteString("---\n\n")
		}
	}

	e.writeFooter(&sb)
	return []byte(sb.String()), nil
}

// Summary renders a video summary.
func (e *MarkdownExporter) Summary(title string, view model.SummaryView) ([]byte, error) {
	if !view.HasResult() {
		return nil, ErrNoSummary
	}

	extra := map[string]string{"url": view.URL}
	heading := title
	if view.Preview != nil {
		extra["video_id"] = view.Preview.VideoID
		if view.Preview.Title != "" {
			heading = view.Preview.Title
		}
	}

	var sb strings.Builder
	e.writeFrontMatter(&sb, heading, "summary", extra)
	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(heading))

	if view.Preview != nil {
		if view.Preview.Author != "" {
			fmt.Fprintf(&sb, "- **Channel**: %s\n", view.Preview.Author)
		}
		fmt.Fprintf(&sb, "- **Video**: <%s>\n", view.Preview.WatchURL())
		fmt.Fprintf(&sb, "- **Thumbnail**: <%s>\n\n", view.Preview.ThumbnailURL)
	} else if view.URL != "" {
		fmt.Fprintf(&sb, "- **Video**: <%s>\n\n", strings.TrimSpace(view.URL))
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(strings.TrimSpace(view.Result))
	sb.WriteString("\n")

	e.writeFooter(&sb)
	return []byte(sb.String()), nil
}

// Grammar renders a grammar check.
func (e *MarkdownExporter) Grammar(original, corrected string) ([]byte, error) {
	if strings.TrimSpace(corrected) == "" {
		return nil, ErrNoResult
	}

	var sb strings.Builder
	e.writeFrontMatter(&sb, "Grammar Checker", "grammar", nil)
	sb.WriteString("# Grammar Checker\n\n")
	sb.WriteString("## Original\n\n")
	sb.WriteString(quote(original))
	sb.WriteString("\n\n## Corrected\n\n")
	sb.WriteString(quote(corrected))
	sb.WriteString("\n")

	e.writeFooter(&sb)
	return []byte(sb.String()), nil
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func (e *MarkdownExporter) writeFrontMatter(sb *strings.Builder, title, kind string, extra map[string]string) {
	if !e.options.IncludeMetadata {
		return
	}
	sb.WriteString("---\n")
	fmt.Fprintf(sb, "title: %s\n", escapeYAML(title))
	fmt.Fprintf(sb, "kind: %s\n", kind)
	for _, key := range []string{"url", "video_id", "messages"} {
		if v, ok := extra[key]; ok && v != "" {
			fmt.Fprintf(sb, "%s: %s\n", key, escapeYAML(v))
		}
	}
	fmt.Fprintf(sb, "exported: %s\n", e.options.now().Format(time.RFC3339))
	sb.WriteString("generator: mmq\n")
	sb.WriteString("---\n\n")
}

func (e *MarkdownExporter) writeFooter(sb *strings.Builder) {
	fmt.Fprintf(sb, "\n---\n\n*Exported from mmq on %s*\n",
		e.options.now().Format("January 2, 2006 at 3:04 PM"))
}

// quote turns text into a Markdown block quote.
func quote(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break a heading.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes values that contain YAML syntax.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return "\"" + s + "\""
	}
	return s
}
