// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/export"
	"github.com/jeranaias/mmq-tui/internal/input"
	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/screen"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
)

// Title is the screen title.
const Title = "Multi-Modal Query"

// Gateway is the part of the gateway client the chat screen uses.
type Gateway interface {
	Chat(ctx context.Context, message string, history []model.HistoryEntry) (string, error)
}

// Options configures a chat screen.
type Options struct {
	Gateway Gateway
	Logger  *zap.Logger

	// ExportDir receives ctrl+e exports.
	ExportDir string

	// RecordFailedTurns sends failed turns back as context too.
	RecordFailedTurns bool

	// ShowTimestamps adds the send time under each bubble.
	ShowTimestamps bool

	// WordWrap fixes the markdown wrap width. 0 follows the window.
	WordWrap int
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model of one Multi-Modal Query screen.
type Model struct {
	id    uuid.UUID
	opts  Options
	log   *zap.Logger
	theme *styles.Theme

	// Conversation state and request lifetime
	chat *screen.Chat
	life *components.Lifetime

	// Dimensions
	width  int
	height int

	// UI Components
	header     *components.Header
	viewport   viewport.Model
	composer   textarea.Model
	imageInput textinput.Model
	attaching  bool
	spinner    components.Spinner
	toasts     *components.ToastManager
	ticking    bool
	markdown   *components.Markdown
	keyMap     KeyMap
	help       help.Model

	now func() time.Time
}

// New creates a chat screen with a fresh conversation.
func New(theme *styles.Theme, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Ask anything..."
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 4096
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	ti := textinput.New()
	ti.Prompt = "Image path: "
	ti.Placeholder = "~/Pictures/photo.png"
	ti.CharLimit = 1024

	m := Model{
		id:         uuid.New(),
		opts:       opts,
		log:        log.With(zap.String("screen", "chat")),
		theme:      theme,
		chat:       screen.NewChat(screen.ChatOptions{RecordFailedTurns: opts.RecordFailedTurns}),
		life:       components.NewLifetime(),
		header:     components.NewHeader(theme, Title),
		viewport:   viewport.New(80, 20),
		composer:   ta,
		imageInput: ti,
		spinner:    components.NewSpinner(components.ThinkingMessage),
		toasts:     components.NewToastManager(),
		markdown:   components.NewMarkdown(theme.GlamourStyle(), opts.WordWrap),
		keyMap:     keys,
		help:       help.New(),
		now:        time.Now,
	}
	m.refresh()
	return m
}

// ID returns the screen instance ID carried by its request results.
func (m Model) ID() uuid.UUID {
	return m.id
}

// Close cancels requests still in flight. Their results are dropped anyway.
func (m Model) Close() {
	m.life.Close()
}

// Messages returns the chat log.
func (m Model) Messages() []model.Message {
	return m.chat.Messages()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
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
		if m.attaching {
			return m.handleAttachKey(msg)
		}
		return m.handleKey(msg)

	case ResponseMsg:
		return m.handleResponse(msg)

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
		m.header.SetState(m.chat.State())
		m.markdown.SetStyle(msg.Theme.GlamourStyle())
		m.refresh()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	if m.attaching {
		m.imageInput, cmd = m.imageInput.Update(msg)
	} else {
		m.composer, cmd = m.composer.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.composer.SetWidth(max(msg.Width-4, 10))
	m.imageInput.Width = max(msg.Width-len(m.imageInput.Prompt)-4, 10)
	m.viewport.Width = msg.Width
	m.help.Width = msg.Width
	if m.opts.WordWrap <= 0 {
		m.markdown.SetWidth(max(m.theme.BubbleWidth()-4, 10))
	}
	m.refresh()
	m.viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		return m, components.BackCmd(m.id)

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.AttachImage):
		m.attaching = true
		m.imageInput.SetValue("")
		m.composer.Blur()
		return m, m.imageInput.Focus()

	case key.Matches(msg, m.keyMap.RemoveImage):
		if m.chat.PendingImage() == "" {
			return m, nil
		}
		m.chat.RemoveImage()
		m.toasts.AddStatus("Image removed")
		return m, m.startToasts()

	case key.Matches(msg, m.keyMap.Copy):
		reply, ok := m.chat.LastReply()
		if !ok {
			return m, nil
		}
		return m, components.ShareCmd(m.id, reply.Content)

	case key.Matches(msg, m.keyMap.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m Model) handleAttachKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.attaching = false
		m.imageInput.Blur()
		return m, m.composer.Focus()

	case tea.KeyEnter:
		ref, err := input.ResolveImage(m.imageInput.Value())
		if err != nil {
			if errors.Is(err, input.ErrEmpty) {
				return m, nil
			}
			m.toasts.AddError(err.Error())
			return m, m.startToasts()
		}
		m.chat.AttachImage(ref)
		m.log.Debug("image attached", zap.String("image", ref))
		m.attaching = false
		m.imageInput.Blur()
		m.toasts.AddSuccess("Attached " + filepath.Base(ref))
		return m, tea.Batch(m.composer.Focus(), m.startToasts())
	}

	var cmd tea.Cmd
	m.imageInput, cmd = m.imageInput.Update(msg)
	return m, cmd
}

// submit sends the composer text with the pending image. Blank input with
// no image does nothing.
func (m Model) submit() (Model, tea.Cmd) {
	turn, err := m.chat.Submit(m.composer.Value())
	switch {
	case errors.Is(err, screen.ErrBusy):
		m.toasts.AddWarning("Please wait for the current reply.")
		return m, m.startToasts()
	case err != nil:
		return m, nil
	}

	m.log.Debug("chat turn submitted",
		zap.Int("message_id", turn.UserID),
		zap.Bool("image", turn.Image != ""),
		zap.Int("history", len(turn.History)),
	)
	m.composer.Reset()
	m.header.SetState(m.chat.State())
	m.refresh()
	m.viewport.GotoBottom()
	return m, tea.Batch(
		m.spinner.Start(),
		SendCmd(m.life.Context(), m.opts.Gateway, m.id, turn),
	)
}

func (m Model) handleResponse(msg ResponseMsg) (Model, tea.Cmd) {
	if msg.ScreenID != m.id {
		return m, nil
	}
	if msg.Err != nil {
		m.log.Warn("chat request failed", zap.Error(msg.Err))
	}
	m.chat.Complete(msg.Turn, msg.Reply, msg.Err)
	m.spinner.Stop()
	m.header.SetState(m.chat.State())
	m.refresh()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) exportCmd() tea.Cmd {
	msgs := m.chat.Messages()
	dir := m.opts.ExportDir
	now := m.now
	return components.ExportCmd(m.id, func() (string, error) {
		opts := export.DefaultOptions()
		opts.OutputDir = dir
		opts.Now = now
		return export.ExportConversation(msgs, opts)
	})
}

// startToasts starts the sweep ticker unless it already runs.
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

// layout gives the viewport whatever height the other parts leave.
func (m *Model) layout() {
	if m.height == 0 {
		return
	}
	used := lipgloss.Height(m.header.View()) +
		lipgloss.Height(m.renderInput()) +
		lipgloss.Height(m.renderStatus())
	if s := m.spinner.View(); s != "" {
		used += lipgloss.Height(s)
	}
	if bar := m.renderImageBar(); bar != "" {
		used += lipgloss.Height(bar)
	}
	if t := m.renderToasts(); t != "" {
		used += lipgloss.Height(t)
	}
	m.viewport.Height = max(m.height-used, 1)
}

// refresh re-renders the message log into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderMessages())
}
