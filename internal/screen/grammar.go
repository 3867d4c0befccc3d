// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"github.com/jeranaias/mmq-tui/internal/input"
	"github.com/jeranaias/mmq-tui/internal/model"
)

// GrammarFailureMessage is shown when a check does not complete.
const GrammarFailureMessage = "Grammar check failed. Please try again."

// Grammar is the state of one Grammar Checker screen.
type Grammar struct {
	result string
	state  model.RequestState
}

// NewGrammar creates an empty grammar screen state.
func NewGrammar() *Grammar {
	return &Grammar{}
}

// Result returns the last corrected text.
func (g *Grammar) Result() string {
	return g.result
}

// State returns the request state.
func (g *Grammar) State() model.RequestState {
	return g.state
}

// Busy reports whether a check is running.
func (g *Grammar) Busy() bool {
	return g.state == model.StateInFlight
}

// Submit moves to InFlight and returns the text to check, byte for byte as
// given. Blank text is input.ErrEmpty and changes nothing.
func (g *Grammar) Submit(text string) (string, error) {
	if g.Busy() {
		return "", ErrBusy
	}
	if input.IsBlank(text) {
		return "", input.ErrEmpty
	}
	g.state = model.StateInFlight
	return text, nil
}

// Succeed stores the corrected text.
func (g *Grammar) Succeed(corrected string) {
	g.result = corrected
	g.state = model.StateIdle
}

// Fail returns to Idle and keeps the previous result.
func (g *Grammar) Fail() {
	g.state = model.StateIdle
}

// Clear drops the result.
func (g *Grammar) Clear() {
	g.result = ""
}
