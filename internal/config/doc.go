// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for mmq.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - EndpointsConfig: One URL per feature screen
//   - PreviewConfig: Debounce and rate limit of the video preview
//   - Watcher: Reloads the file on change (fsnotify)
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (MMQ_*), including those from a .env file
//   - ~/.mmq/config.toml
//   - ~/.mmq/config.json
//   - Built-in defaults
//
// # Usage
//
//	config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := gateway.NewClientWithConfig(cfg.GatewayConfig(logger))
package config
