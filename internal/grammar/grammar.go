// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grammar provides the local grammar fallback used by the Grammar Checker.
//
// There is no remote grammar service yet. DictionaryChecker replaces a small
// fixed set of misspellings and waits a short simulated latency so the screen
// behaves as it would against a real endpoint.
package grammar

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultLatency is the simulated service delay.
const DefaultLatency = 1500 * time.Millisecond

// DefaultDictionary maps misspellings to their corrections.
var DefaultDictionary = map[string]string{
	"calender": "calendar",
	"seperate": "separate",
	"wierd":    "weird",
}

// Checker corrects text.
type Checker interface {
	Check(ctx context.Context, text string) (string, error)
}

// Correction records one replaced token.
type Correction struct {
	Original    string
	Replacement string
	Offset      int // byte offset in the input
}

// DictionaryChecker replaces whole-word, case-insensitive dictionary matches
// with the lowercase correction. All other text is left untouched.
type DictionaryChecker struct {
	dict    map[string]string
	pattern *regexp.Regexp
	latency time.Duration
}

// NewDictionaryChecker creates a checker over DefaultDictionary.
// A negative latency disables the simulated delay.
func NewDictionaryChecker(latency time.Duration) *DictionaryChecker {
	return NewDictionaryCheckerWith(DefaultDictionary, latency)
}

// NewDictionaryCheckerWith creates a checker over a custom dictionary.
func NewDictionaryCheckerWith(dict map[string]string, latency time.Duration) *DictionaryChecker {
	lower := make(map[string]string, len(dict))
	words := make([]string, 0, len(dict))
	for k, v := range dict {
		k = strings.ToLower(k)
		lower[k] = v
		words = append(words, regexp.QuoteMeta(k))
	}
	// Longest first so overlapping entries prefer the longer word.
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	var pattern *regexp.Regexp
	if len(words) > 0 {
		pattern = regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
	}
	if latency < 0 {
		latency = 0
	}
	return &DictionaryChecker{dict: lower, pattern: pattern, latency: latency}
}

// Correct applies the dictionary to text immediately.
func (c *DictionaryChecker) Correct(text string) string {
	if c.pattern == nil {
		return text
	}
	return c.pattern.ReplaceAllStringFunc(text, func(match string) string {
		if repl, ok := c.dict[strings.ToLower(match)]; ok {
			return repl
		}
		return match
	})
}

// Corrections lists every token Correct would replace, in order.
func (c *DictionaryChecker) Corrections(text string) []Correction {
	if c.pattern == nil {
		return nil
	}
	var out []Correction
	for _, loc := range c.pattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		out = append(out, Correction{
			Original:    match,
			Replacement: c.dict[strings.ToLower(match)],
			Offset:      loc[0],
		})
	}
	return out
}

// Check waits the simulated latency, then returns the corrected text.
// It returns ctx.Err() if ctx is done first.
func (c *DictionaryChecker) Check(ctx context.Context, text string) (string, error) {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return c.Correct(text), nil
}

// Latency returns the simulated delay.
func (c *DictionaryChecker) Latency() time.Duration {
	return c.latency
}
