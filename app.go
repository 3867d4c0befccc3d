// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/cli"
	"github.com/jeranaias/mmq-tui/internal/config"
	"github.com/jeranaias/mmq-tui/internal/gateway"
	"github.com/jeranaias/mmq-tui/internal/logging"
	"github.com/jeranaias/mmq-tui/internal/screen"
	"github.com/jeranaias/mmq-tui/internal/ui/chat"
	"github.com/jeranaias/mmq-tui/internal/ui/components"
	"github.com/jeranaias/mmq-tui/internal/ui/grammar"
	"github.com/jeranaias/mmq-tui/internal/ui/styles"
	"github.com/jeranaias/mmq-tui/internal/ui/summarize"
	"github.com/jeranaias/mmq-tui/internal/util"
	"github.com/jeranaias/mmq-tui/internal/youtube"
)

// =============================================================================
// FEATURES
// =============================================================================

type feature int

const (
	featureChat feature = iota
	featureSummarize
	featureSummarizeClassic
	featureGrammar
)

var featureItems = []components.MenuItem{
	featureChat:             {Title: chat.Title, Description: "Ask about text or an image"},
	featureSummarize:        {Title: screen.VariantStandard.Title(), Description: "Summarize a video, with a preview"},
	featureSummarizeClassic: {Title: screen.VariantClassic.Title(), Description: "Summarize a video with the classic service"},
	featureGrammar:          {Title: grammar.Title, Description: "Fix common misspellings"},
}

// featureScreen is a mounted feature screen.
type featureScreen interface {
	tea.Model
	ID() uuid.UUID
	Close()
}

// configReloadedMsg is sent by the config watcher.
type configReloadedMsg struct {
	cfg *config.Config
	err error
}

// =============================================================================
// KEYS
// =============================================================================

type menuKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Open  key.Binding
	Jump  key.Binding
	Quit  key.Binding
	Force key.Binding
}

func defaultMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "jump"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Jump, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// App is the root model: the features menu and at most one mounted screen.
type App struct {
	cfg     *config.Config
	log     *logging.Logger
	verbose bool
	theme   *styles.Theme

	// Clients for newly mounted screens, rebuilt when the config changes.
	gateway cli.Gateway
	preview cli.PreviewLookup

	menu   *components.Menu
	keys   menuKeyMap
	help   help.Model
	active featureScreen

	size    tea.WindowSizeMsg
	hasSize bool
	status  string
}

// NewApp creates the root model with clients built from cfg.
func NewApp(cfg *config.Config, log *logging.Logger, verbose bool) *App {
	if log == nil {
		log = logging.L()
	}
	theme := styles.NewTheme(cfg.UI.Theme)
	a := &App{
		cfg:     cfg,
		log:     log,
		verbose: verbose,
		theme:   theme,
		menu:    components.NewMenu(theme, featureItems),
		keys:    defaultMenuKeyMap(),
		help:    help.New(),
	}
	a.gateway, a.preview = newClients(cfg, log.Logger)
	return a
}

// newClients builds the gateway client and, when previews are enabled, the
// oEmbed client. The preview interface stays nil otherwise.
func newClients(cfg *config.Config, log *zap.Logger) (cli.Gateway, cli.PreviewLookup) {
	gw := gateway.NewClientWithConfig(cfg.GatewayConfig(log))
	if !cfg.Preview.Enabled {
		return gw, nil
	}
	return gw, youtube.NewPreviewClient(gw, cfg.PreviewConfig(log))
}

// Close cancels the requests of the mounted screen.
func (a *App) Close() {
	if a.active != nil {
		a.active.Close()
		a.active = nil
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.size, a.hasSize = msg, true
		a.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Force) {
			a.Close()
			return a, tea.Quit
		}
		if a.active == nil {
			return a.handleMenuKey(msg)
		}

	case components.BackMsg:
		if a.active != nil && msg.ScreenID == a.active.ID() {
			a.log.Debug("SCREEN_UNMOUNT", zap.Stringer("screen_id", msg.ScreenID))
			a.Close()
		}
		return a, nil

	case configReloadedMsg:
		return a.applyConfig(msg)
	}

	if a.active == nil {
		return a, nil
	}
	next, cmd := a.active.Update(msg)
	a.active = next.(featureScreen)
	return a, cmd
}

func (a *App) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Up):
		a.menu.Up()
	case key.Matches(msg, a.keys.Down):
		a.menu.Down()
	case key.Matches(msg, a.keys.Jump):
		if a.menu.Select(int(msg.Runes[0] - '1')) {
			return a.open(feature(a.menu.Cursor()))
		}
	case key.Matches(msg, a.keys.Open):
		return a.open(feature(a.menu.Cursor()))
	}
	return a, nil
}

// open mounts a fresh screen for f. Screens never outlive a visit, so
// reopening a feature starts from its initial state.
func (a *App) open(f feature) (tea.Model, tea.Cmd) {
	a.Close()
	a.status = ""
	a.active = a.newScreen(f)
	a.log.Debug("SCREEN_MOUNT",
		zap.String("feature", featureItems[f].Title),
		zap.Stringer("screen_id", a.active.ID()))

	cmds := []tea.Cmd{a.active.Init()}
	if a.hasSize {
		next, cmd := a.active.Update(a.size)
		a.active = next.(featureScreen)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) newScreen(f feature) featureScreen {
	exportDir, err := config.ExportDir()
	if err != nil {
		a.log.Warn("no export directory", zap.Error(err))
	}
	log := a.log.Logger

	switch f {
	case featureSummarize, featureSummarizeClassic:
		variant := screen.VariantStandard
		if f == featureSummarizeClassic {
			variant = screen.VariantClassic
		}
		opts := summarize.Options{
			Variant:   variant,
			Gateway:   a.gateway,
			Debounce:  a.cfg.DebounceDelay(),
			Logger:    log,
			ExportDir: exportDir,
			WordWrap:  a.cfg.UI.WordWrap,
		}
		if a.preview != nil {
			opts.Preview = a.preview
		}
		return summarize.New(a.theme, opts)

	case featureGrammar:
		return grammar.New(a.theme, grammar.Options{
			Checker:   a.cfg.GrammarChecker(),
			Logger:    log,
			ExportDir: exportDir,
		})

	default:
		return chat.New(a.theme, chat.Options{
			Gateway:           a.gateway,
			Logger:            log,
			ExportDir:         exportDir,
			RecordFailedTurns: a.cfg.Chat.RecordFailedTurns,
			ShowTimestamps:    a.cfg.UI.ShowTimestamps,
			WordWrap:          a.cfg.UI.WordWrap,
		})
	}
}

// applyConfig takes a reloaded config. Theme and log level change at once;
// endpoints and screen options apply to screens opened afterwards.
func (a *App) applyConfig(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.status = "Config not reloaded: " + util.FirstLine(msg.err.Error())
		return a, nil
	}
	prev := a.cfg
	a.cfg = msg.cfg
	config.SetGlobal(msg.cfg)
	a.status = "Config reloaded"

	if !a.verbose {
		if err := a.log.SetLevel(msg.cfg.Logging.Level); err != nil {
			a.log.Warn("log level not changed", zap.Error(err))
		}
	}
	a.gateway, a.preview = newClients(msg.cfg, a.log.Logger)

	if styles.NormalizeMode(prev.UI.Theme) == styles.NormalizeMode(msg.cfg.UI.Theme) {
		return a, nil
	}
	a.theme = styles.NewTheme(msg.cfg.UI.Theme)
	a.menu = rebuildMenu(a.theme, a.menu.Cursor())
	if a.active == nil {
		return a, nil
	}
	next, cmd := a.active.Update(components.ThemeChangedMsg{Theme: a.theme})
	a.active = next.(featureScreen)
	return a, cmd
}

func rebuildMenu(theme *styles.Theme, cursor int) *components.Menu {
	m := components.NewMenu(theme, featureItems)
	m.Select(cursor)
	return m
}

// View implements tea.Model.
func (a *App) View() string {
	if a.active != nil {
		return a.active.View()
	}

	var sb strings.Builder
	sb.WriteString(a.theme.HeaderBrand.Render("mmq"))
	sb.WriteString("  ")
	sb.WriteString(a.theme.HeaderSubtitle.Render("Features"))
	sb.WriteString("\n\n")
	sb.WriteString(a.menu.View())
	sb.WriteString("\n\n")
	if a.status != "" {
		sb.WriteString(a.theme.Muted.Render(a.status))
		sb.WriteString("\n")
	}
	sb.WriteString(a.help.View(a.keys))

	if !a.hasSize {
		return sb.String()
	}
	return lipgloss.Place(a.size.Width, a.size.Height, lipgloss.Center, lipgloss.Center, sb.String())
}
