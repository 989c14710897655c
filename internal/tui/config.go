package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/traceplot/traceplot/internal/observability"
)

const (
	envConfigDir = "TRACEPLOT_CONFIG_DIR"
	configName   = "traceplot.json"
)

// Config stores the application configuration.
type Config struct {
	// MarkerGlyph is the rune drawn for tracepoint markers.
	MarkerGlyph string `json:"marker_glyph"`

	// ColorScheme selects the marker/label color pair.
	ColorScheme string `json:"color_scheme"`
}

// DefaultConfigPath resolves the config file location, honoring the
// TRACEPLOT_CONFIG_DIR override.
func DefaultConfigPath() string {
	if dir := os.Getenv(envConfigDir); dir != "" {
		return filepath.Join(dir, configName)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return configName
	}
	return filepath.Join(dir, "traceplot", configName)
}

// ConfigManager manages application configuration with thread-safe access
// and automatic persistence to disk.
//
// All setter methods save changes to disk.
type ConfigManager struct {
	mu     sync.RWMutex
	path   string
	config Config
	logger *observability.CoreLogger
}

func NewConfigManager(path string, logger *observability.CoreLogger) *ConfigManager {
	cm := &ConfigManager{
		path: path,
		config: Config{
			MarkerGlyph: DefaultMarkerGlyph,
			ColorScheme: DefaultColorScheme,
		},
		logger: logger,
	}
	if err := cm.loadOrCreateConfig(); err != nil {
		cm.logger.Error(fmt.Sprintf("config: error loading or creating: %v", err))
	}

	return cm
}

// loadOrCreateConfig loads the configuration from disk or stores and uses
// defaults.
func (cm *ConfigManager) loadOrCreateConfig() error {
	data, err := os.ReadFile(cm.path)

	// No config file yet, create and save it.
	if os.IsNotExist(err) {
		if dir := filepath.Dir(cm.path); dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
		return cm.save()
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &cm.config); err != nil {
		return err
	}

	cm.normalizeConfig()

	return nil
}

// normalizeConfig ensures all config values are valid.
func (cm *ConfigManager) normalizeConfig() {
	if _, ok := colorSchemes[cm.config.ColorScheme]; !ok {
		cm.config.ColorScheme = DefaultColorScheme
	}
	if !validMarkerGlyph(cm.config.MarkerGlyph) {
		cm.config.MarkerGlyph = DefaultMarkerGlyph
	}
}

// save writes the current configuration to disk.
//
// Must be called while holding the lock.
func (cm *ConfigManager) save() error {
	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return err
	}

	targetPath := cm.path
	tempPath := targetPath + ".tmp"

	// Write atomically via temp file + rename.
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp config file: %v", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		return fmt.Errorf("failed to rename tmp config file: %v", err)
	}

	return nil
}

// MarkerGlyph returns the configured marker glyph.
func (cm *ConfigManager) MarkerGlyph() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.MarkerGlyph
}

// SetMarkerGlyph sets and persists the marker glyph.
func (cm *ConfigManager) SetMarkerGlyph(glyph string) error {
	if !validMarkerGlyph(glyph) {
		return fmt.Errorf("unknown marker glyph %q", glyph)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.MarkerGlyph = glyph
	return cm.save()
}

// ColorScheme returns the configured color scheme name.
func (cm *ConfigManager) ColorScheme() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.ColorScheme
}

// SetColorScheme sets and persists the color scheme.
func (cm *ConfigManager) SetColorScheme(name string) error {
	if _, ok := colorSchemes[name]; !ok {
		return fmt.Errorf("unknown color scheme %q", name)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.ColorScheme = name
	return cm.save()
}
