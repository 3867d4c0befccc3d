// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - the "config" command.
//
// Usage:
//
//	mmq config show             effective settings (file + env)
//	mmq config path             config file location
//	mmq config get ui.theme     one value
//	mmq config set ui.theme dark
//	mmq config keys             every settable key
//	mmq config reset            write the defaults
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/jeranaias/mmq-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(env *Env, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(env, args)
	case "path":
		return handleConfigPath(env, args)
	case "get":
		return handleConfigGet(env, args)
	case "set":
		return handleConfigSet(env, args)
	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(env.Stdout, k)
		}
		return nil
	case "reset":
		return handleConfigReset(env, args)
	default:
		return &ValidationError{
			Field:   "config subcommand",
			Value:   args.Subcommand,
			Reason:  "unknown subcommand",
			Example: "mmq config show|path|get|set|keys|reset",
		}
	}
}

// configPath returns the file "config set" writes to.
func (e *Env) configPath() (string, error) {
	if e.ConfigPath != "" {
		return e.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

func handleConfigShow(env *Env, args Args) error {
	if args.JSON {
		return env.printJSON("config", env.Config)
	}

	section := ""
	for _, key := range config.Keys() {
		sec, name, ok := strings.Cut(key, ".")
		if !ok {
			name = key
		} else if sec != section {
			fmt.Fprintln(env.Stdout)
			fmt.Fprintln(env.Stdout, TitleStyle.Render("["+sec+"]"))
			section = sec
		}
		val, _ := env.Config.Get(key)
		fmt.Fprintf(env.Stdout, "  %s = %v\n", name, val)
	}
	if len(env.Config.Grammar.Dictionary) > 0 {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, TitleStyle.Render("[grammar.dictionary]"))
		words := slices.Sorted(maps.Keys(env.Config.Grammar.Dictionary))
		for _, w := range words {
			fmt.Fprintf(env.Stdout, "  %s = %s\n", w, env.Config.Grammar.Dictionary[w])
		}
	}
	return nil
}

func handleConfigPath(env *Env, args Args) error {
	path, err := env.configPath()
	if err != nil {
		return err
	}
	if args.JSON {
		return env.printJSON("config", map[string]string{"path": path})
	}
	fmt.Fprintln(env.Stdout, path)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		env.info(args, "%s", DimStyle.Render("(file does not exist yet, defaults are in use)"))
	}
	return nil
}

func handleConfigGet(env *Env, args Args) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "mmq config get ui.theme")
	}
	val, err := env.Config.Get(args.ConfigKey)
	if err != nil {
		return &ValidationError{Field: "key", Value: args.ConfigKey, Reason: err.Error(), Example: "mmq config keys"}
	}
	if args.JSON {
		return env.printJSON("config", ConfigValueData{Key: args.ConfigKey, Value: val})
	}
	fmt.Fprintln(env.Stdout, val)
	return nil
}

// handleConfigSet edits the file itself, not the effective config, so
// environment overrides are never written to disk.
func handleConfigSet(env *Env, args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key and value", "mmq config set ui.theme dark")
	}
	path, err := env.configPath()
	if err != nil {
		return err
	}

	if err := checkWritable(path); err != nil {
		return err
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return err
		}
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &ValidationError{Field: "key", Value: args.ConfigKey, Reason: err.Error(), Example: "mmq config keys"}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	if args.JSON {
		val, _ := cfg.Get(args.ConfigKey)
		return env.printJSON("config", ConfigValueData{Key: args.ConfigKey, Value: val})
	}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s = %s\n", SuccessStyle.Render("[OK]"), args.ConfigKey, args.ConfigVal)
	}
	return nil
}

func handleConfigReset(env *Env, args Args) error {
	path, err := env.configPath()
	if err != nil {
		return err
	}
	if err := checkWritable(path); err != nil {
		return err
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	if !args.Quiet && !args.JSON {
		fmt.Fprintf(env.Stdout, "%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
	}
	return nil
}

// checkWritable rejects JSON config files, which are read-only to mmq.
func checkWritable(path string) error {
	if strings.HasSuffix(path, ".json") {
		return &ValidationError{Field: "config file", Value: path, Reason: "only TOML config files can be written"}
	}
	return nil
}
