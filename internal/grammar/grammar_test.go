// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDictionaryChecker_Correct(t *testing.T) {
	c := NewDictionaryChecker(0)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"basic", "My calender is seperate", "My calendar is separate"},
		{"case insensitive", "CALENDER and Wierd", "calendar and weird"},
		{"whole words only", "calenders seperately", "calenders seperately"},
		{"punctuation kept", "wierd, calender!", "weird, calendar!"},
		{"nothing to fix", "All good here.", "All good here."},
		{"empty", "", ""},
		{"multiline", "line one wierd\nline two  calender ", "line one weird\nline two  calendar "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Correct(tc.in); got != tc.want {
				t.Errorf("Correct(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDictionaryChecker_Corrections(t *testing.T) {
	c := NewDictionaryChecker(0)
	got := c.Corrections("My calender is Seperate")

	if len(got) != 2 {
		t.Fatalf("Corrections() len = %d, want 2", len(got))
	}
	if got[0].Original != "calender" || got[0].Replacement != "calendar" || got[0].Offset != 3 {
		t.Errorf("Corrections()[0] = %+v", got[0])
	}
	if got[1].Original != "Seperate" || got[1].Replacement != "separate" {
		t.Errorf("Corrections()[1] = %+v", got[1])
	}
}

func TestDictionaryChecker_CheckLatency(t *testing.T) {
	c := NewDictionaryChecker(20 * time.Millisecond)

	start := time.Now()
	got, err := c.Check(context.Background(), "wierd")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if got != "weird" {
		t.Errorf("Check() = %q, want %q", got, "weird")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("Check() returned before the simulated latency")
	}
}

func TestDictionaryChecker_CheckCancelled(t *testing.T) {
	c := NewDictionaryChecker(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Check(ctx, "wierd"); !errors.Is(err, context.Canceled) {
		t.Errorf("Check() error = %v, want context.Canceled", err)
	}
}

func TestNewDictionaryCheckerWith_Custom(t *testing.T) {
	c := NewDictionaryCheckerWith(map[string]string{"Teh": "the", "recieve": "receive"}, -1)

	if c.Latency() != 0 {
		t.Errorf("Latency() = %v, want 0", c.Latency())
	}
	if got := c.Correct("teh parcel we recieve"); got != "the parcel we receive" {
		t.Errorf("Correct() = %q", got)
	}

	empty := NewDictionaryCheckerWith(nil, 0)
	if empty.Correct("anything") != "anything" {
		t.Error("empty dictionary must not change text")
	}
}
