// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package summarize provides the two YouTube summarizer screens.
//
// The standard variant validates the URL, shows a debounced video preview
// and posts {url}. The classic variant only requires a non-empty link and
// posts {video_url}. Each screen keeps one result which only a successful
// request replaces.
package summarize

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/export"
	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/screen"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

// Gateway is the part of the gateway client the summarizer uses.
type Gateway interface {
	Summarize(ctx context.Context, url string) (string, error)
	SummarizeClassic(ctx context.Context, videoURL string) (string, error)
}

// PreviewLookup fetches video metadata.
type PreviewLookup interface {
	Lookup(ctx context.Context, videoID string) (*model.VideoPreview, error)
}

// Options configures a summarizer screen.
type Options struct {
	Variant screen.Variant
	Gateway Gateway

	// Preview is nil when previews are disabled. The classic variant never
	// looks one up.
	Preview  PreviewLookup
	Debounce time.Duration

	Logger    *zap.Logger
	ExportDir string
	WordWrap  int
}

// Model is the Bubble Tea model of one summarizer screen.
type Model struct {
	id    uuid.UUID
	opts  Options
	log   *zap.Logger
	theme *styles.Theme

	state *screen.Summarizer
	life  *components.Lifetime

	width  int
	height int

	header   *components.Header
	urlInput textinput.Model
	result   viewport.Model
	spinner  components.Spinner
	toasts   *components.ToastManager
	ticking  bool
	markdown *components.Markdown
	keyMap   KeyMap
	help     help.Model

	now func() time.Time
}

// New creates an empty summarizer screen.
func New(theme *styles.Theme, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.CharLimit = 2048
	if opts.Variant == screen.VariantClassic {
		ti.Prompt = "Video link: "
		ti.Placeholder = "Paste a YouTube link"
	} else {
		ti.Prompt = "YouTube URL: "
		ti.Placeholder = "https://www.youtube.com/watch?v=..."
	}
	ti.Focus()

	return Model{
		id:       uuid.New(),
		opts:     opts,
		log:      log.With(zap.String("screen", "summarize"), zap.Stringer("variant", opts.Variant)),
		theme:    theme,
		state:    screen.NewSummarizer(opts.Variant, opts.Debounce),
		life:     components.NewLifetime(),
		header:   components.NewHeader(theme, opts.Variant.Title()),
		urlInput: ti,
		result:   viewport.New(80, 10),
		spinner:  components.NewSpinner(components.SummarizingMessage),
		toasts:   components.NewToastManager(),
		markdown: components.NewMarkdown(theme.GlamourStyle(), opts.WordWrap),
		keyMap:   DefaultKeyMap(),
		help:     help.New(),
		now:      time.Now,
	}
}

// ID returns the screen instance ID carried by its request results.
func (m Model) ID() uuid.UUID {
	return m.id
}

// Close cancels requests still in flight.
func (m Model) Close() {
	m.life.Close()
}

// SummaryView returns what the screen displays.
func (m Model) SummaryView() model.SummaryView {
	return m.state.View()
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message and re-lays out the screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PreviewTickMsg:
		if msg.ScreenID != m.id || m.opts.Preview == nil || !m.state.PreviewDue(msg.Gen) {
			return m, nil
		}
		return m, lookupCmd(m.life.Context(), m.opts.Preview, m.id, msg)

	case PreviewMsg:
		if msg.ScreenID != m.id {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Debug("preview lookup failed", zap.Error(msg.Err))
			msg.Preview = nil
		}
		m.state.ApplyPreview(msg.Gen, msg.Preview)
		return m, nil

	case ResultMsg:
		return m.handleResult(msg)

	case components.ExportedMsg:
		if msg.ScreenID != m.id {
			return m, nil
		}
		components.NotifyExported(m.toasts, msg)
		return m, m.startToasts()

	case components.SharedMsg:
		if msg.ScreenID != m.id {
			return m, nil
		}
		components.NotifyShared(m.toasts, msg)
		return m, m.startToasts()

	case components.ToastTickMsg:
		if m.toasts.Sweep(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.ticking = false
		return m, nil

	case components.ThemeChangedMsg:
		m.theme = msg.Theme
		m.header = components.NewHeader(msg.Theme, m.opts.Variant.Title())
		m.header.SetWidth(m.width)
		m.header.SetState(m.state.State())
		m.markdown.SetStyle(msg.Theme.GlamourStyle())
		m.refresh()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.urlInput, cmd = m.urlInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.urlInput.Width = max(msg.Width-len(m.urlInput.Prompt)-4, 10)
	m.result.Width = msg.Width
	m.help.Width = msg.Width
	if m.opts.WordWrap <= 0 {
		m.markdown.SetWidth(max(m.theme.ContentWidth()-4, 10))
	}
	m.refresh()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		return m, components.BackCmd(m.id)

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Clear):
		m.state.Clear()
		m.urlInput.SetValue("")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.Share):
		view := m.state.View()
		if !view.HasResult() {
			m.toasts.AddWarning("There is no summary to share yet.")
			return m, m.startToasts()
		}
		return m, components.ShareCmd(m.id, view.Result)

	case key.Matches(msg, m.keyMap.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keyMap.PageUp):
		m.result.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.result.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, tea.Batch(cmd, m.urlChanged())
}

// urlChanged records an edit of the URL field and schedules the debounced
// preview lookup when the URL names a video.
func (m Model) urlChanged() tea.Cmd {
	req := m.state.SetURL(m.urlInput.Value())
	if !req.Lookup || m.opts.Preview == nil {
		return nil
	}
	return debounceCmd(m.id, req, m.state.DebounceDelay())
}

func (m Model) submit() (Model, tea.Cmd) {
	url, err := m.state.Submit()
	if err != nil {
		m.toasts.AddWarning(m.state.Alert(err))
		return m, m.startToasts()
	}

	m.log.Debug("summarize submitted", zap.String("url", url))
	m.header.SetState(m.state.State())
	return m, tea.Batch(
		m.spinner.Start(),
		summarizeCmd(m.life.Context(), m.opts.Gateway, m.opts.Variant, m.id, url),
	)
}

func (m Model) handleResult(msg ResultMsg) (Model, tea.Cmd) {
	if msg.ScreenID != m.id {
		return m, nil
	}
	m.spinner.Stop()

	var cmd tea.Cmd
	if msg.Err != nil {
		m.log.Warn("summarize request failed", zap.Error(msg.Err))
		m.state.Fail()
		m.toasts.AddError(m.state.FailureMessage())
		cmd = m.startToasts()
	} else {
		m.state.Succeed(msg.Text)
	}
	m.header.SetState(m.state.State())
	m.refresh()
	m.result.GotoTop()
	return m, cmd
}

func (m Model) exportCmd() tea.Cmd {
	view := m.state.View()
	title := m.opts.Variant.Title()
	dir := m.opts.ExportDir
	now := m.now
	return components.ExportCmd(m.id, func() (string, error) {
		opts := export.DefaultOptions()
		opts.OutputDir = dir
		opts.Now = now
		return export.ExportSummary(title, view, opts)
	})
}

func (m *Model) startToasts() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) layout() {
	if m.height == 0 {
		return
	}
	used := lipgloss.Height(m.header.View()) +
		lipgloss.Height(m.renderInput()) +
		lipgloss.Height(m.renderStatus()) +
		1 // result label
	if card := m.renderPreview(); card != "" {
		used += lipgloss.Height(card)
	}
	if s := m.spinner.View(); s != "" {
		used += lipgloss.Height(s)
	}
	if t := m.renderToasts(); t != "" {
		used += lipgloss.Height(t)
	}
	m.result.Height = max(m.height-used, 1)
}

func (m *Model) refresh() {
	result := m.state.View().Result
	if result == "" {
		m.result.SetContent(m.theme.Muted.Render("The summary will appear here."))
		return
	}
	m.result.SetContent(m.markdown.Render(result))
}
