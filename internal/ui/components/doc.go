// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI pieces of the mmq screens:
// the in-flight spinner, toasts, the header bar, the features menu and the
// glamour markdown renderer.
package components
