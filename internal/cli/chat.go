// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - the "chat" command: an interactive chat REPL.
//
// Input is read with liner, so arrow keys edit the line and walk the input
// history, which is kept in ~/.mmq/chat_history between sessions. Ctrl+C
// while waiting for a reply cancels the request; at the prompt it exits.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/config"
	"github.com/jeranaias/mmq-tui/internal/input"
	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/screen"
)

// =============================================================================
// INPUT WITH HISTORY
// =============================================================================

// ChatCLI provides line editing and persistent input history.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates the line editor and loads the saved history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = filepath.Join(os.TempDir(), "mmq_chat_history")
	}

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// LoadHistory reads the history file if it exists.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line. Non-blank lines are added to the history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	text, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if !input.IsBlank(text) {
		c.line.AppendHistory(text)
	}
	return text, nil
}

// SaveHistory writes the history file, owner-readable only.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves the history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession is one REPL conversation. It drives the same chat state as
// the TUI screen.
type ChatSession struct {
	env  *Env
	chat *screen.Chat

	started time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewChatSession starts with the greeting and no history.
func NewChatSession(env *Env) *ChatSession {
	return &ChatSession{
		env:     env,
		chat:    newScreenChat(env),
		started: time.Now(),
	}
}

func newScreenChat(env *Env) *screen.Chat {
	return screen.NewChat(screen.ChatOptions{RecordFailedTurns: env.Config.Chat.RecordFailedTurns})
}

// Messages returns the transcript.
func (s *ChatSession) Messages() []model.Message {
	return s.chat.Messages()
}

// Prompt returns the input prompt, marked when an image is pending.
func (s *ChatSession) Prompt() string {
	if img := s.chat.PendingImage(); img != "" {
		return "[" + filepath.Base(img) + "] you> "
	}
	return "you> "
}

// CancelRequest aborts the reply being waited for. It reports whether
// there was one.
func (s *ChatSession) CancelRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	s.cancel = nil
	return true
}

// HandleLine processes one line of input. It returns false when the user
// asked to leave.
func (s *ChatSession) HandleLine(ctx context.Context, line string) bool {
	text := strings.TrimSpace(line)
	switch {
	case text == "" && s.chat.PendingImage() == "":
		return true
	case strings.HasPrefix(text, "/"):
		return s.handleSlashCommand(text)
	case strings.EqualFold(text, "exit"), strings.EqualFold(text, "quit"):
		return false
	}
	s.send(ctx, line)
	return true
}

// send runs one turn and prints the assistant's message.
func (s *ChatSession) send(ctx context.Context, text string) {
	turn, err := s.chat.Submit(text)
	if err != nil {
		return
	}

	reqCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer s.CancelRequest()

	reply, err := s.env.Gateway.Chat(reqCtx, turn.Message, turn.History)
	msg := s.chat.Complete(turn, reply, err)

	out := s.env.Stdout
	fmt.Fprintln(out)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(s.env.Stderr, WarningStyle.Render("[Cancelled]"))
		}
		s.env.Log.Warn("chat turn failed", zap.Error(err))
		fmt.Fprintln(out, ErrorStyle.Render(msg.Content))
	} else {
		fmt.Fprintln(out, RenderMarkdown(msg.Content))
	}
	fmt.Fprintln(out)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (s *ChatSession) handleSlashCommand(text string) bool {
	cmd, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	out := s.env.Stdout

	switch strings.ToLower(cmd) {
	case "/help", "/h", "/?", "/":
		s.printHelp()

	case "/image", "/img", "/i":
		ref, err := input.ResolveImage(rest)
		if err != nil {
			fmt.Fprintf(s.env.Stderr, "%s %s\n", WarningStyle.Render("[Image]"), imageReason(err))
			return true
		}
		s.chat.AttachImage(ref)
		fmt.Fprintf(out, "%s %s\n", DimStyle.Render("Attached"), filepath.Base(ref))

	case "/noimage", "/rmimage":
		s.chat.RemoveImage()
		fmt.Fprintln(out, DimStyle.Render("Image removed"))

	case "/clear", "/c":
		s.chat = newScreenChat(s.env)
		fmt.Fprintln(out, DimStyle.Render("[Conversation cleared]"))

	case "/quit", "/q", "/exit":
		return false

	default:
		fmt.Fprintf(s.env.Stderr, "%s unknown command: %s (type /help for commands)\n",
			ErrorStyle.Render("[Error]"), cmd)
	}
	return true
}

func (s *ChatSession) printHelp() {
	out := s.env.Stdout
	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render("Chat commands"))
	for _, c := range [][2]string{
		{"/image PATH", "Attach an image to the next message"},
		{"/noimage", "Remove the pending image"},
		{"/clear", "Start a new conversation"},
		{"/help", "Show this help"},
		{"/exit", "Leave the chat"},
	} {
		fmt.Fprintf(out, "  %-14s %s\n", c[0], DimStyle.Render(c[1]))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, DimStyle.Render("Ctrl+C cancels a pending reply, Ctrl+D exits"))
	fmt.Fprintln(out)
}

func (s *ChatSession) printWelcome() {
	out := s.env.Stdout
	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render("mmq chat"))
	fmt.Fprintln(out, RenderSeparator(30))
	if greeting, ok := s.chat.LastReply(); ok {
		fmt.Fprintln(out, greeting.Content)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, DimStyle.Render("Type a message and press Enter. Commands: /help, /exit"))
	fmt.Fprintln(out)
}

func (s *ChatSession) printExitSummary() {
	out := s.env.Stdout
	turns := 0
	for _, m := range s.chat.Messages() {
		if m.IsUser() {
			turns++
		}
	}
	if turns > 0 {
		fmt.Fprintf(out, "%s %d messages in %s\n",
			DimStyle.Render("Session:"), turns, time.Since(s.started).Round(time.Second))
	}
	fmt.Fprintln(out, DimStyle.Render("Goodbye!"))
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat runs the REPL until /exit, Ctrl+C at the prompt or EOF.
func HandleChat(ctx context.Context, env *Env, args Args) error {
	session := NewChatSession(env)
	if !args.Quiet {
		session.printWelcome()
	}

	inputCLI := NewChatCLI()
	defer inputCLI.Close()

	// liner owns Ctrl+C at the prompt; this only sees it during a request.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			session.CancelRequest()
		}
	}()

	for {
		line, err := inputCLI.ReadInput(session.Prompt())
		if err != nil {
			// liner.ErrPromptAborted (Ctrl+C) and io.EOF (Ctrl+D) both end
			// the session.
			fmt.Fprintln(env.Stdout)
			if !args.Quiet {
				session.printExitSummary()
			}
			return nil
		}
		if !session.HandleLine(ctx, line) {
			if !args.Quiet {
				session.printExitSummary()
			}
			return nil
		}
	}
}
