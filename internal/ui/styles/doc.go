// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the mmq TUI.

All colors use Lip Gloss AdaptiveColor. The Theme decides whether the dark or
light half applies: "auto" asks the terminal through termenv, "dark" and
"light" force it.

# Usage

	theme := styles.NewTheme(cfg.UI.Theme)
	bubble := theme.UserBubble.Render("hello")
	renderer, _ := glamour.NewTermRenderer(glamour.WithStandardStyle(theme.GlamourStyle()))
*/
package styles
