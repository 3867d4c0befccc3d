// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/mmq-tui/internal/input"
	"github.com/jeranaias/mmq-tui/internal/screen"
)

// HandleGrammar corrects text with the configured dictionary. The simulated
// latency only applies to the TUI.
func HandleGrammar(env *Env, args Args) error {
	g := screen.NewGrammar()
	text, err := g.Submit(args.Query)
	if errors.Is(err, input.ErrEmpty) {
		return ErrMissingArgument("text", `mmq grammar "My calender is wierd"`)
	}
	if err != nil {
		return err
	}

	checker := env.Config.GrammarChecker()
	corrected := checker.Correct(text)
	corrections := checker.Corrections(text)
	g.Succeed(corrected)

	if args.JSON {
		data := GrammarData{
			Original:    text,
			Corrected:   g.Result(),
			Corrections: make([]CorrectionData, 0, len(corrections)),
		}
		for _, c := range corrections {
			data.Corrections = append(data.Corrections, CorrectionData{
				Original:    c.Original,
				Replacement: c.Replacement,
				Offset:      c.Offset,
			})
		}
		return env.printJSON("grammar", data)
	}

	fmt.Fprintln(env.Stdout, g.Result())
	if len(corrections) > 0 {
		env.info(args, "")
		for _, c := range corrections {
			env.info(args, "  %s -> %s", WarningStyle.Render(c.Original), SuccessStyle.Render(c.Replacement))
		}
	}
	return nil
}
