// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mmq-tui/internal/gateway"
)

// isolate points the config dir at a temp directory and clears MMQ_ variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MMQ_HOME", dir)
	for _, key := range []string{
		"MMQ_CHAT_URL", "MMQ_SUMMARIZE_URL", "MMQ_SUMMARIZE_CLASSIC_URL", "MMQ_TIMEOUT",
		"MMQ_PREVIEW", "MMQ_RECORD_FAILED_TURNS", "MMQ_LOG_LEVEL", "MMQ_LOG_FILE", "MMQ_THEME",
	} {
		t.Setenv(key, "")
	}
	return dir
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, gateway.DefaultChatURL, cfg.Endpoints.Chat)
	assert.Equal(t, gateway.DefaultSummarizeURL, cfg.Endpoints.Summarize)
	assert.Equal(t, gateway.DefaultSummarizeClassicURL, cfg.Endpoints.SummarizeClassic)
	assert.Equal(t, 0, cfg.Gateway.TimeoutSecs, "no timeout by default")
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceDelay())
	assert.False(t, cfg.Chat.RecordFailedTurns)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Endpoints, cfg.Endpoints)
}

// =============================================================================
// FILE LOADING
// =============================================================================

func TestLoadFromPath_TOMLPartial(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[endpoints]
chat = "http://localhost:9000/chat"

[preview]
enabled = false
debounce_ms = 800

[grammar]
latency_ms = -1
[grammar.dictionary]
teh = "the"
`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/chat", cfg.Endpoints.Chat)
	assert.Equal(t, gateway.DefaultSummarizeURL, cfg.Endpoints.Summarize, "missing keys keep defaults")
	assert.False(t, cfg.Preview.Enabled)
	assert.Equal(t, 800*time.Millisecond, cfg.DebounceDelay())

	checker := cfg.GrammarChecker()
	assert.Equal(t, "the calendar", checker.Correct("teh calender"))
	assert.Equal(t, time.Duration(0), checker.Latency())
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ui": {"theme": "light"}}`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestLoad_InvalidValueIsError(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[ui]
theme = "neon"
`), 0600))

	_, err := Load()
	require.Error(t, err)
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "ui.theme", verrs[0].Field)
}

func TestLoad_BrokenFileFallsBack(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`this is = = not toml`), 0600))

	cfg, err := Load()
	assert.Error(t, err, "load error is reported")
	require.NotNil(t, cfg)
	assert.Equal(t, Default().Endpoints, cfg.Endpoints)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.UI.Theme = "dark"
	cfg.Chat.RecordFailedTurns = true

	require.NoError(t, Save(cfg))
	path := filepath.Join(dir, "config.toml")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.UI.Theme)
	assert.True(t, loaded.Chat.RecordFailedTurns)
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MMQ_CHAT_URL", "https://example.com/chat")
	t.Setenv("MMQ_TIMEOUT", "30")
	t.Setenv("MMQ_PREVIEW", "false")
	t.Setenv("MMQ_RECORD_FAILED_TURNS", "1")
	t.Setenv("MMQ_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://example.com/chat", cfg.Endpoints.Chat)
	assert.Equal(t, 30, cfg.Gateway.TimeoutSecs)
	assert.False(t, cfg.Preview.Enabled)
	assert.True(t, cfg.Chat.RecordFailedTurns)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 30*time.Second, cfg.GatewayConfig(nil).Timeout)
}

func TestEnvBeatsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[endpoints]\nsummarize = \"http://file:1/s\"\n"), 0600))
	t.Setenv("MMQ_SUMMARIZE_URL", "http://env:2/s")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:2/s", cfg.Endpoints.Summarize)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MMQ_DOTENV_PROBE=from-dotenv\n"), 0600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)
	defer os.Unsetenv("MMQ_DOTENV_PROBE")

	LoadDotEnv()
	assert.Equal(t, "from-dotenv", os.Getenv("MMQ_DOTENV_PROBE"))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.Endpoints.Chat = "ftp://x/y" }, "endpoints.chat"},
		{"no host", func(c *Config) { c.Endpoints.Summarize = "http://" }, "endpoints.summarize"},
		{"empty classic", func(c *Config) { c.Endpoints.SummarizeClassic = "" }, "endpoints.summarize_classic"},
		{"negative timeout", func(c *Config) { c.Gateway.TimeoutSecs = -1 }, "gateway.timeout_secs"},
		{"debounce too large", func(c *Config) { c.Preview.DebounceMs = 60000 }, "preview.debounce_ms"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"dictionary phrase", func(c *Config) { c.Grammar.Dictionary = map[string]string{"two words": "x"} }, "grammar.dictionary"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "expected ValidateErrors, got %v", err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

// =============================================================================
// GET / SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("ui.theme", "dark"))
	require.NoError(t, cfg.Set("gateway.timeout_secs", "15"))
	require.NoError(t, cfg.Set("preview.enabled", "false"))
	require.NoError(t, cfg.Set("preview.rate_per_second", "0.5"))

	v, err := cfg.Get("ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.Equal(t, 15, cfg.Gateway.TimeoutSecs)
	assert.False(t, cfg.Preview.Enabled)
	assert.Equal(t, 0.5, cfg.Preview.RatePerSecond)

	assert.Error(t, cfg.Set("ui.nope", "x"))
	assert.Error(t, cfg.Set("gateway.timeout_secs", "soon"))
	assert.Error(t, cfg.Set("grammar.dictionary", "x"))
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "endpoints.chat")
	assert.Contains(t, keys, "chat.record_failed_turns")
	assert.NotContains(t, keys, "grammar.dictionary")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

func TestClone_DeepCopiesDictionary(t *testing.T) {
	cfg := Default()
	cfg.Grammar.Dictionary = map[string]string{"teh": "the"}

	clone := cfg.Clone()
	clone.Grammar.Dictionary["teh"] = "THE"
	assert.Equal(t, "the", cfg.Grammar.Dictionary["teh"])
}

// =============================================================================
// GLOBAL / WATCHER
// =============================================================================

func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestWatcher_ReloadsOnSave(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	}, nil)
	require.NoError(t, err)
	defer w.Close()

	cfg := Default()
	cfg.UI.Theme = "light"
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case got := <-changes:
		assert.Equal(t, "light", got.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	dir := isolate(t)
	w, err := NewWatcher(filepath.Join(dir, "config.toml"), 0, nil, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
