// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screen holds the state of the feature screens as plain objects with
// one reducer method per event.
//
// Each screen state owns a RequestState. Submit moves it from Idle to
// InFlight and rejects a second submission with ErrBusy; Succeed and Fail
// move it back to Idle. Nothing here performs I/O: callers run the gateway
// call and feed the outcome back in. The TUI and the line-mode CLI share
// these types.
package screen

import "errors"

// ErrBusy is returned by Submit while a request is in flight.
var ErrBusy = errors.New("a request is already in flight")
