// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grammar provides the Grammar Checker screen.
package grammar

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/export"
	checker "github.com/jeranaias/mmq-tui/internal/grammar"
	"github.com/jeranaias/mmq-tui/internal/screen"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

// Title is the screen title.
const Title = "Grammar Checker"

// correctionLister is implemented by checkers that can name what they changed.
type correctionLister interface {
	Corrections(text string) []checker.Correction
}

// Options configures the grammar screen.
type Options struct {
	Checker   checker.Checker
	Logger    *zap.Logger
	ExportDir string
}

// ResultMsg carries the outcome of one check.
type ResultMsg struct {
	ScreenID    uuid.UUID
	Original    string
	Corrected   string
	Corrections []checker.Correction
	Err         error
}

// Model is the Bubble Tea model of one Grammar Checker screen.
type Model struct {
	id    uuid.UUID
	opts  Options
	log   *zap.Logger
	theme *styles.Theme

	state *screen.Grammar
	life  *components.Lifetime

	// original is the text of the last successful check
	original    string
	corrections []checker.Correction

	width  int
	height int

	header  *components.Header
	editor  textarea.Model
	spinner components.Spinner
	toasts  *components.ToastManager
	ticking bool
	keyMap  KeyMap
	help    help.Model

	now func() time.Time
}

// New creates an empty grammar screen.
func New(theme *styles.Theme, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Type or paste text to check..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 8192
	ta.SetHeight(5)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	return Model{
		id:      uuid.New(),
		opts:    opts,
		log:     log.With(zap.String("screen", "grammar")),
		theme:   theme,
		state:   screen.NewGrammar(),
		life:    components.NewLifetime(),
		header:  components.NewHeader(theme, Title),
		editor:  ta,
		spinner: components.NewSpinner(components.CheckingMessage),
		toasts:  components.NewToastManager(),
		keyMap:  keys,
		help:    help.New(),
		now:     time.Now,
	}
}

// ID returns the screen instance ID carried by its results.
func (m Model) ID() uuid.UUID {
	return m.id
}

// Close cancels a running check.
func (m Model) Close() {
	m.life.Close()
}

// Result returns the last corrected text.
func (m Model) Result() string {
	return m.state.Result()
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.editor.SetWidth(max(msg.Width-4, 10))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResultMsg:
		if msg.ScreenID != m.id {
			return m, nil
		}
		m.spinner.Stop()
		if msg.Err != nil {
			m.log.Warn("grammar check failed", zap.Error(msg.Err))
			m.state.Fail()
			m.toasts.AddError(screen.GrammarFailureMessage)
			m.header.SetState(m.state.State())
			return m, m.startToasts()
		}
		m.state.Succeed(msg.Corrected)
		m.original = msg.Original
		m.corrections = msg.Corrections
		m.log.Debug("grammar check done", zap.Int("corrections", len(msg.Corrections)))
		m.header.SetState(m.state.State())
		return m, nil

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
		m.header = components.NewHeader(msg.Theme, Title)
		m.header.SetWidth(m.width)
		m.header.SetState(m.state.State())
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		return m, components.BackCmd(m.id)

	case key.Matches(msg, m.keyMap.Submit):
		text, err := m.state.Submit(m.editor.Value())
		switch {
		case errors.Is(err, screen.ErrBusy):
			m.toasts.AddWarning("Please wait for the current check to finish.")
			return m, m.startToasts()
		case err != nil:
			return m, nil
		}
		m.header.SetState(m.state.State())
		return m, tea.Batch(m.spinner.Start(), m.checkCmd(text))

	case key.Matches(msg, m.keyMap.Clear):
		m.state.Clear()
		m.original = ""
		m.corrections = nil
		m.editor.Reset()
		return m, nil

	case key.Matches(msg, m.keyMap.Copy):
		if m.state.Result() == "" {
			return m, nil
		}
		return m, components.ShareCmd(m.id, m.state.Result())

	case key.Matches(msg, m.keyMap.Export):
		original, corrected := m.original, m.state.Result()
		dir, now := m.opts.ExportDir, m.now
		return m, components.ExportCmd(m.id, func() (string, error) {
			opts := export.DefaultOptions()
			opts.OutputDir = dir
			opts.Now = now
			return export.ExportGrammar(original, corrected, opts)
		})

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) checkCmd(text string) tea.Cmd {
	ctx, id, c := m.life.Context(), m.id, m.opts.Checker
	return func() tea.Msg {
		corrected, err := c.Check(ctx, text)
		res := ResultMsg{ScreenID: id, Original: text, Corrected: corrected, Err: err}
		if lister, ok := c.(correctionLister); ok && err == nil {
			res.Corrections = lister.Corrections(text)
		}
		return res
	}
}

func (m *Model) startToasts() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the editor above the corrected text.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	parts := []string{
		m.header.View(),
		m.theme.InputLabel.Render("Text"),
		m.theme.InputContainer.Render(m.editor.View()),
	}
	if s := m.spinner.View(); s != "" {
		parts = append(parts, s)
	}
	if result := m.state.Result(); result != "" {
		parts = append(parts,
			m.theme.ResultLabel.Render("Corrected"),
			m.theme.ResultBox.Width(m.theme.ContentWidth()).Render(result),
			m.renderCorrections(),
		)
	}
	if t := components.RenderToastStack(m.toasts.Toasts(), m.width); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.help.View(m.keyMap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderCorrections() string {
	if len(m.corrections) == 0 {
		return m.theme.Muted.Render("No corrections.")
	}
	pairs := make([]string, 0, len(m.corrections))
	for _, c := range m.corrections {
		pairs = append(pairs, c.Original+" -> "+c.Replacement)
	}
	label := "1 correction: "
	if len(m.corrections) > 1 {
		label = strconv.Itoa(len(m.corrections)) + " corrections: "
	}
	return m.theme.Muted.Render(label + strings.Join(pairs, ", "))
}
