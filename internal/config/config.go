// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for mmq.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env and environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.mmq/config.toml
//   - ~/.mmq/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jeranaias/mmq-tui/internal/gateway"
	"github.com/jeranaias/mmq-tui/internal/grammar"
	"github.com/jeranaias/mmq-tui/internal/logging"
	"github.com/jeranaias/mmq-tui/internal/util"
	"github.com/jeranaias/mmq-tui/internal/youtube"
)

// CurrentVersion is the config file format version.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete mmq configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Endpoint URLs, one per feature screen
	Endpoints EndpointsConfig `toml:"endpoints" json:"endpoints"`

	// HTTP client settings
	Gateway GatewayConfig `toml:"gateway" json:"gateway"`

	// Video preview lookup
	Preview PreviewConfig `toml:"preview" json:"preview"`

	Chat    ChatConfig    `toml:"chat" json:"chat"`
	Grammar GrammarConfig `toml:"grammar" json:"grammar"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
	UI      UIConfig      `toml:"ui" json:"ui"`
}

// EndpointsConfig holds the remote service URLs.
type EndpointsConfig struct {
	// Chat is the multimodal chat endpoint
	Chat string `toml:"chat" json:"chat"`
	// Summarize is the YouTube summarizer endpoint ({url} payload)
	Summarize string `toml:"summarize" json:"summarize"`
	// SummarizeClassic is the classic summarizer endpoint ({video_url} payload)
	SummarizeClassic string `toml:"summarize_classic" json:"summarize_classic"`
}

// GatewayConfig contains HTTP client settings.
type GatewayConfig struct {
	// TimeoutSecs bounds a whole request. 0 waits indefinitely.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// UserAgent sent with every request
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// PreviewConfig contains YouTube preview settings.
type PreviewConfig struct {
	// Enabled turns the oEmbed preview lookup on or off
	Enabled bool `toml:"enabled" json:"enabled"`
	// OEmbedURL is the lookup base URL
	OEmbedURL string `toml:"oembed_url" json:"oembed_url"`
	// DebounceMs is the quiet period after the last URL edit
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
	// RatePerSecond caps lookups
	RatePerSecond float64 `toml:"rate_per_second" json:"rate_per_second"`
	// Burst is the rate limiter burst
	Burst int `toml:"burst" json:"burst"`
}

// ChatConfig contains chat screen settings.
type ChatConfig struct {
	// RecordFailedTurns sends failed turns back as context too
	RecordFailedTurns bool `toml:"record_failed_turns" json:"record_failed_turns"`
}

// GrammarConfig contains grammar checker settings.
type GrammarConfig struct {
	// LatencyMs is the simulated service delay. Negative disables it.
	LatencyMs int `toml:"latency_ms" json:"latency_ms"`
	// Dictionary adds misspelling -> correction entries to the built-in ones
	Dictionary map[string]string `toml:"dictionary" json:"dictionary,omitempty"`
}

// LoggingConfig contains log file settings.
type LoggingConfig struct {
	// Level: debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Format: json or console
	Format string `toml:"format" json:"format"`
	// File is the log path. Empty uses ~/.mmq/logs/mmq.log
	File       string `toml:"file" json:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days"`
	Compress   bool   `toml:"compress" json:"compress"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// WordWrap is the markdown wrap width. 0 follows the window.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// ShowTimestamps shows message times in the chat
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`
	// Mouse enables mouse wheel scrolling
	Mouse bool `toml:"mouse" json:"mouse"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Endpoints: EndpointsConfig{
			Chat:             gateway.DefaultChatURL,
			Summarize:        gateway.DefaultSummarizeURL,
			SummarizeClassic: gateway.DefaultSummarizeClassicURL,
		},
		Gateway: GatewayConfig{
			TimeoutSecs: 0,
			UserAgent:   gateway.DefaultUserAgent,
		},
		Preview: PreviewConfig{
			Enabled:       true,
			OEmbedURL:     youtube.DefaultOEmbedURL,
			DebounceMs:    500,
			RatePerSecond: 2,
			Burst:         1,
		},
		Grammar: GrammarConfig{
			LatencyMs: int(grammar.DefaultLatency / time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		UI: UIConfig{
			Theme:     "auto",
			AltScreen: true,
			Mouse:     true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the mmq configuration directory path.
// MMQ_HOME overrides the default ~/.mmq.
func ConfigDir() (string, error) {
	if dir := os.Getenv("MMQ_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mmq"), nil
}

func pathInConfigDir(elem ...string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{dir}, elem...)...), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return pathInConfigDir("config.toml")
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	return pathInConfigDir("config.json")
}

// ExportDir returns the directory markdown exports are written to.
func ExportDir() (string, error) {
	return pathInConfigDir("exports")
}

// HistoryPath returns the line-mode chat input history file.
func HistoryPath() (string, error) {
	return pathInConfigDir("chat_history")
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	for _, locate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := locate()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		// A broken file falls back to defaults, but only an invalid
		// value in a readable file is fatal.
		var verrs ValidateErrors
		if errors.As(err, &verrs) {
			return nil, err
		}
		loadErr = err
		break
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration atomically to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# mmq configuration file\n")
	b.WriteString("# Generated by mmq - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	for field, raw := range map[string]string{
		"endpoints.chat":              c.Endpoints.Chat,
		"endpoints.summarize":         c.Endpoints.Summarize,
		"endpoints.summarize_classic": c.Endpoints.SummarizeClassic,
		"preview.oembed_url":          c.Preview.OEmbedURL,
	} {
		if err := validateHTTPURL(raw); err != nil {
			errs = append(errs, ValidationError{Field: field, Message: err.Error()})
		}
	}

	if c.Gateway.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "gateway.timeout_secs",
			Message: "must be 0 (no timeout) or positive",
		})
	}
	if c.Preview.DebounceMs < 0 || c.Preview.DebounceMs > 10000 {
		errs = append(errs, ValidationError{
			Field:   "preview.debounce_ms",
			Message: fmt.Sprintf("invalid value %d, must be between 0 and 10000", c.Preview.DebounceMs),
		})
	}
	if c.Preview.RatePerSecond < 0 {
		errs = append(errs, ValidationError{Field: "preview.rate_per_second", Message: "must not be negative"})
	}

	if !logging.IsValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: %s", c.Logging.Level, strings.Join(logging.ValidLevels, ", ")),
		})
	}
	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "console" {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, console", c.Logging.Format),
		})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{Field: "ui.word_wrap", Message: "must not be negative"})
	}

	for word := range c.Grammar.Dictionary {
		if strings.TrimSpace(word) == "" || strings.ContainsAny(word, " \t\n") {
			errs = append(errs, ValidationError{
				Field:   "grammar.dictionary",
				Message: fmt.Sprintf("entry '%s' must be a single word", word),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid scheme '%s', must be http or https", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Endpoints.Chat == "" {
		c.Endpoints.Chat = defaults.Endpoints.Chat
	}
	if c.Endpoints.Summarize == "" {
		c.Endpoints.Summarize = defaults.Endpoints.Summarize
	}
	if c.Endpoints.SummarizeClassic == "" {
		c.Endpoints.SummarizeClassic = defaults.Endpoints.SummarizeClassic
	}
	if c.Gateway.UserAgent == "" {
		c.Gateway.UserAgent = defaults.Gateway.UserAgent
	}
	if c.Preview.OEmbedURL == "" {
		c.Preview.OEmbedURL = defaults.Preview.OEmbedURL
	}
	if c.Preview.DebounceMs == 0 {
		c.Preview.DebounceMs = defaults.Preview.DebounceMs
	}
	if c.Preview.RatePerSecond == 0 {
		c.Preview.RatePerSecond = defaults.Preview.RatePerSecond
	}
	if c.Preview.Burst <= 0 {
		c.Preview.Burst = defaults.Preview.Burst
	}
	if c.Grammar.LatencyMs == 0 {
		c.Grammar.LatencyMs = defaults.Grammar.LatencyMs
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - MMQ_CHAT_URL: overrides endpoints.chat
//   - MMQ_SUMMARIZE_URL: overrides endpoints.summarize
//   - MMQ_SUMMARIZE_CLASSIC_URL: overrides endpoints.summarize_classic
//   - MMQ_TIMEOUT: overrides gateway.timeout_secs
//   - MMQ_PREVIEW: "0"/"false" disables the video preview
//   - MMQ_RECORD_FAILED_TURNS: "1"/"true" sends failed chat turns as context
//   - MMQ_LOG_LEVEL: overrides logging.level
//   - MMQ_LOG_FILE: overrides logging.file
//   - MMQ_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MMQ_CHAT_URL"); v != "" {
		c.Endpoints.Chat = v
	}
	if v := os.Getenv("MMQ_SUMMARIZE_URL"); v != "" {
		c.Endpoints.Summarize = v
	}
	if v := os.Getenv("MMQ_SUMMARIZE_CLASSIC_URL"); v != "" {
		c.Endpoints.SummarizeClassic = v
	}
	if v := os.Getenv("MMQ_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Gateway.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("MMQ_PREVIEW"); v != "" {
		c.Preview.Enabled = parseBool(v)
	}
	if v := os.Getenv("MMQ_RECORD_FAILED_TURNS"); v != "" {
		c.Chat.RecordFailedTurns = parseBool(v)
	}
	if v := os.Getenv("MMQ_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MMQ_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("MMQ_THEME"); v != "" {
		c.UI.Theme = v
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// GatewayConfig builds the gateway client configuration.
func (c *Config) GatewayConfig(log *zap.Logger) *gateway.ClientConfig {
	eps := gateway.DefaultEndpoints()
	eps.Chat.URL = c.Endpoints.Chat
	eps.Summarize.URL = c.Endpoints.Summarize
	eps.SummarizeClassic.URL = c.Endpoints.SummarizeClassic

	return &gateway.ClientConfig{
		Endpoints: eps,
		Timeout:   time.Duration(c.Gateway.TimeoutSecs) * time.Second,
		UserAgent: c.Gateway.UserAgent,
		Logger:    log,
	}
}

// PreviewConfig builds the preview client configuration.
func (c *Config) PreviewConfig(log *zap.Logger) youtube.PreviewConfig {
	return youtube.PreviewConfig{
		OEmbedURL:     c.Preview.OEmbedURL,
		RatePerSecond: c.Preview.RatePerSecond,
		Burst:         c.Preview.Burst,
		Logger:        log,
	}
}

// DebounceDelay returns the preview debounce delay.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Preview.DebounceMs) * time.Millisecond
}

// GrammarChecker builds the local grammar checker with the configured
// dictionary merged over the built-in one.
func (c *Config) GrammarChecker() *grammar.DictionaryChecker {
	dict := make(map[string]string, len(grammar.DefaultDictionary)+len(c.Grammar.Dictionary))
	for k, v := range grammar.DefaultDictionary {
		dict[k] = v
	}
	for k, v := range c.Grammar.Dictionary {
		dict[strings.ToLower(k)] = v
	}
	return grammar.NewDictionaryCheckerWith(dict, time.Duration(c.Grammar.LatencyMs)*time.Millisecond)
}

// LoggingOptions builds the logger options. An empty file falls back to
// ~/.mmq/logs/mmq.log.
func (c *Config) LoggingOptions() logging.Options {
	file := c.Logging.File
	if file == "" {
		if p, err := pathInConfigDir("logs", "mmq.log"); err == nil {
			file = p
		}
	}
	return logging.Options{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		File:       file,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a scalar configuration value from its string form.
// The result is not validated; call Validate before saving.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: expected a boolean: %w", key, err)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: expected an integer: %w", key, err)
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: expected a number: %w", key, err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("%s cannot be set from the command line", key)
	}
	return nil
}

// lookup walks toml tag names to a field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()

	for i, part := range parts {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i], "."))
		}
		found := false
		for j := 0; j < v.NumField(); j++ {
			if tomlName(v.Type().Field(j)) == part {
				v = v.Field(j)
				found = true
				break
			}
		}
		if !found {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
	}
	return v, nil
}

func tomlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

// Keys returns every settable dot-notation key, sorted by section order.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + tomlName(f)
			switch f.Type.Kind() {
			case reflect.Struct:
				walk(f.Type, name+".")
			case reflect.Map:
				// not settable by key
			default:
				keys = append(keys, name)
			}
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Grammar.Dictionary != nil {
		clone.Grammar.Dictionary = make(map[string]string, len(c.Grammar.Dictionary))
		for k, v := range c.Grammar.Dictionary {
			clone.Grammar.Dictionary[k] = v
		}
	}
	return &clone
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
