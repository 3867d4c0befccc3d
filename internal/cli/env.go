// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// env.go - dependencies shared by command handlers, and dispatch.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/config"
	"github.com/jeranaias/mmq-tui/internal/gateway"
	"github.com/jeranaias/mmq-tui/internal/model"
	"github.com/jeranaias/mmq-tui/internal/youtube"
)

// Gateway is the remote service client used by the commands.
type Gateway interface {
	Chat(ctx context.Context, message string, history []model.HistoryEntry) (string, error)
	Summarize(ctx context.Context, url string) (string, error)
	SummarizeClassic(ctx context.Context, videoURL string) (string, error)
}

// PreviewLookup fetches video metadata.
type PreviewLookup interface {
	Lookup(ctx context.Context, videoID string) (*model.VideoPreview, error)
}

// Env carries what a command needs. Tests replace the clients and writers.
type Env struct {
	Config *config.Config
	// ConfigPath is the --config file, or "" for the default location
	ConfigPath string
	Log        *zap.Logger

	Gateway Gateway
	Preview PreviewLookup

	Stdout io.Writer
	Stderr io.Writer
}

// NewEnv builds the real clients from cfg.
func NewEnv(cfg *config.Config, configPath string, log *zap.Logger) *Env {
	if log == nil {
		log = zap.NewNop()
	}
	gw := gateway.NewClientWithConfig(cfg.GatewayConfig(log))
	return &Env{
		Config:     cfg,
		ConfigPath: configPath,
		Log:        log,
		Gateway:    gw,
		// The preview command is an explicit request, so it ignores
		// preview.enabled, which only governs the TUI's automatic lookups.
		Preview: youtube.NewPreviewClient(gw, cfg.PreviewConfig(log)),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// info writes a status line to stderr unless output is quiet or JSON.
func (e *Env) info(args Args, format string, a ...any) {
	if args.Quiet || args.JSON {
		return
	}
	fmt.Fprintf(e.Stderr, format+"\n", a...)
}

// printJSON writes a success envelope to stdout.
func (e *Env) printJSON(command string, data any) error {
	return NewJSONResponse(command, data).Print(e.Stdout)
}

// Run executes a line-mode command. CmdTUI is handled by the caller.
func Run(ctx context.Context, env *Env, cmd Command, args Args) error {
	switch cmd {
	case CmdAsk:
		return HandleAsk(ctx, env, args)
	case CmdChat:
		return HandleChat(ctx, env, args)
	case CmdSummarize:
		return HandleSummarize(ctx, env, args)
	case CmdGrammar:
		return HandleGrammar(env, args)
	case CmdPreview:
		return HandlePreview(ctx, env, args)
	case CmdConfig:
		return HandleConfig(env, args)
	case CmdVersion:
		return HandleVersion(env, args)
	case CmdHelp:
		PrintUsage(env.Stdout)
		return nil
	default:
		return &ValidationError{
			Field:   "command",
			Value:   args.Subcommand,
			Reason:  "unknown command",
			Example: "mmq help",
		}
	}
}

// HandleVersion prints version information.
func HandleVersion(env *Env, args Args) error {
	if args.JSON {
		return env.printJSON("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		})
	}
	PrintVersion(env.Stdout)
	return nil
}
