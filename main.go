// mmq - multimodal query, grammar and video summaries in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/cli"
	"github.com/jeranaias/mmq-tui/internal/config"
	"github.com/jeranaias/mmq-tui/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args := cli.Parse()

	// Help and version work even with a broken config file.
	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		env := &cli.Env{Stdout: os.Stdout, Stderr: os.Stderr, Log: zap.NewNop()}
		if err := cli.HandleVersion(env, args); err != nil {
			return fail(cmd, args, err)
		}
		return cli.ExitSuccess
	}

	config.LoadDotEnv()
	cfg, path, err := loadConfig(args)
	if err != nil {
		return fail(cmd, args, err)
	}
	config.SetGlobal(cfg)

	log, err := newLogger(cfg, cmd, args)
	if err != nil {
		return fail(cmd, args, err)
	}
	defer log.Close()
	logging.SetGlobal(log)
	log.Debug("STARTUP", zap.Stringer("command", cmd), zap.String("config", path), zap.String("version", Version))

	if cmd == cli.CmdTUI {
		if err := runTUI(cfg, path, args, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error running mmq: %v\n", err)
			return cli.ExitGeneralError
		}
		return cli.ExitSuccess
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	env := cli.NewEnv(cfg, args.ConfigPath, log.Named("cli"))
	if err := cli.Run(ctx, env, cmd, args); err != nil {
		return fail(cmd, args, err)
	}
	return cli.ExitSuccess
}

// loadConfig loads --config if given, else the default location. It returns
// the path the TUI should watch.
func loadConfig(args cli.Args) (*config.Config, string, error) {
	if args.ConfigPath != "" {
		cfg, err := config.LoadFromPath(args.ConfigPath)
		return cfg, args.ConfigPath, err
	}

	path, _ := config.ConfigPathTOML()
	cfg, err := config.Load()
	if cfg == nil {
		return nil, path, err
	}
	if err != nil && !args.Quiet && !args.JSON {
		// An unreadable file falls back to defaults.
		fmt.Fprintf(os.Stderr, "%s %v (using defaults)\n", cli.WarningStyle.Render("[WARN]"), err)
	}
	return cfg, path, nil
}

// newLogger builds the process logger. --verbose adds debug output on stderr
// for line-mode commands; the TUI owns the terminal, so it only gets the file.
func newLogger(cfg *config.Config, cmd cli.Command, args cli.Args) (*logging.Logger, error) {
	opts := cfg.LoggingOptions()
	if args.Verbose {
		opts.Level = "debug"
		opts.Stderr = cmd != cli.CmdTUI
	}
	return logging.New(opts)
}

func fail(cmd cli.Command, args cli.Args, err error) int {
	w := os.Stderr
	if args.JSON {
		w = os.Stdout
	}
	cli.DisplayError(w, cmd.String(), err, args.JSON)
	return cli.GetExitCode(err)
}

// runTUI starts the features menu and, when the config file can be
// watched, applies its changes live.
func runTUI(cfg *config.Config, path string, args cli.Args, log *logging.Logger) error {
	app := NewApp(cfg, log, args.Verbose)
	defer app.Close()

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app, opts...)

	if args.ConfigPath == "" {
		// The watcher needs the directory even before a file exists.
		if err := config.EnsureConfigDir(); err != nil {
			log.Warn("config directory unavailable", zap.Error(err))
		}
	}
	if path != "" {
		w, err := config.NewWatcher(path, 0, func(next *config.Config, err error) {
			p.Send(configReloadedMsg{cfg: next, err: err})
		}, log.Logger)
		if err != nil {
			log.Warn("config watcher unavailable", zap.String("path", path), zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	_, err := p.Run()
	return err
}
