// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing, usage and version output.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdSummarize
	CmdGrammar
	CmdPreview
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

var commandNames = map[Command]string{
	CmdTUI:       "tui",
	CmdAsk:       "ask",
	CmdChat:      "chat",
	CmdSummarize: "summarize",
	CmdGrammar:   "grammar",
	CmdPreview:   "preview",
	CmdConfig:    "config",
	CmdVersion:   "version",
	CmdHelp:      "help",
	CmdUnknown:   "unknown",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool
	ConfigPath string

	// Command-specific
	Query      string // ask and grammar text
	URL        string // summarize and preview
	Image      string // ask --image
	Classic    bool   // summarize --classic
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args after the command name
	Raw []string
}

const usageText = `mmq - multimodal query, grammar and video summaries in the terminal

Usage:
  mmq [global flags] [command] [args]

Commands:
  tui                               Start the features menu (default)
  ask "question" [--image PATH]     One chat turn, optionally about an image
  chat                              Interactive chat with input history
  summarize URL [--classic]         Summarize a YouTube video
  grammar "text"                    Correct common misspellings
  preview URL                       Show title and channel of a video
  config show                       Print the effective configuration
  config path                       Print the config file path
  config get KEY                    Print one value (dot notation)
  config set KEY VALUE              Change one value and save
  config keys                       List settable keys
  config reset                      Write the default configuration
  version                           Show version information
  help                              Show this help

Global flags:
  --config PATH                     Use a specific config file
  -v, --verbose                     Debug logging to stderr
  -q, --quiet                       Suppress informational output
  --json                            JSON output for one-shot commands

Chat commands (inside mmq chat):
  /image PATH                       Attach an image to the next message
  /noimage                          Remove the pending image
  /clear                            Start a new conversation
  /help                             Show chat commands
  /exit                             Leave (Ctrl+D works too)

Examples:
  mmq ask "What is in this picture?" --image ~/Pictures/cat.png
  mmq summarize https://youtu.be/dQw4w9WgXcQ
  mmq summarize --classic "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  mmq grammar "My calender is wierd"
  mmq --json preview https://youtu.be/dQw4w9WgXcQ

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "mmq version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s\n", runtime.Version())
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments (without the program name) and
// returns the command and its args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask", "a":
		p := NewArgParser(remaining)
		parsed.Image = p.Flag("image", "i")
		parsed.Query = JoinPositionalArgs(p, 0)
		return CmdAsk, parsed

	case "chat":
		return CmdChat, parsed

	case "summarize", "summarise", "sum":
		p := NewArgParser(remaining, "classic", "c")
		parsed.Classic = p.BoolFlag("classic", "c")
		parsed.URL = JoinPositionalArgs(p, 0)
		return CmdSummarize, parsed

	case "grammar", "g":
		p := NewArgParser(remaining)
		parsed.Query = JoinPositionalArgs(p, 0)
		return CmdGrammar, parsed

	case "preview":
		p := NewArgParser(remaining)
		parsed.URL = p.Positional(0)
		return CmdPreview, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "version", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		parsed.Subcommand = cmd
		return CmdUnknown, parsed
	}
}

// parseGlobalFlags extracts global flags wherever they appear and returns
// the rest in order. Global flags after "--" are left alone.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			remaining = append(remaining, args[i:]...)
			return remaining, parsed
		case arg == "-q" || arg == "--quiet":
			parsed.Quiet = true
		case arg == "-v" || arg == "--verbose":
			parsed.Verbose = true
		case arg == "--json":
			parsed.JSON = true
		case arg == "--config":
			if i+1 < len(args) {
				i++
				parsed.ConfigPath = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			parsed.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsed
}

// parseConfigArgs parses "config <sub> [key] [value]".
func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	if args.Subcommand == "" {
		args.Subcommand = "show"
	}
	args.ConfigKey = p.Positional(1)
	args.ConfigVal = JoinPositionalArgs(p, 2)
}
