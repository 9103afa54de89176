package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	rperrors "github.com/driftship/driftship/internal/errors"
)

// ValidationError collects every validation failure before reporting, so a
// user fixing configuration sees all the problems in one pass.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Validator validates an on-disk Config before it is folded into a
// ship.Config.
type Validator struct {
	errors *ValidationError
}

// NewValidator creates a configuration validator.
func NewValidator() *Validator {
	return &Validator{errors: &ValidationError{}}
}

// Validate checks the documented configuration fields, catching typos in
// enum-like values before the orchestrator core ever sees them.
func (v *Validator) Validate(cfg *Config) error {
	v.validateVersion(cfg.Version)
	v.validateRelease(cfg.Release)
	v.validateHooks(cfg.Hooks)

	if v.errors.HasErrors() {
		return rperrors.Validation("config.Validate", v.errors.Error())
	}
	return nil
}

func (v *Validator) validateVersion(cfg VersionConfig) {
	if cfg.Strategy == "" {
		return // detected
	}
	valid := []string{"conventional-commits", "interactive", "explicit"}
	if !slices.Contains(valid, cfg.Strategy) {
		v.errors.Addf("version.strategy: must be one of %v, got %q", valid, cfg.Strategy)
	}
}

func (v *Validator) validateRelease(cfg ReleaseConfig) {
	if cfg.Title != "" && strings.Count(cfg.Title, "{") != strings.Count(cfg.Title, "}") {
		v.errors.Addf("release.title: unbalanced {var} interpolation in %q", cfg.Title)
	}
	if cfg.NotesTemplate != "" {
		if _, err := os.Stat(cfg.NotesTemplate); os.IsNotExist(err) {
			v.errors.Addf("release.notes_template: file does not exist: %s", cfg.NotesTemplate)
		}
	}
	for i, asset := range cfg.Assets {
		if asset == "" {
			v.errors.Addf("release.assets[%d]: cannot be empty", i)
		}
		if filepath.IsAbs(asset) {
			v.errors.Addf("release.assets[%d]: must be relative to project root, got %q", i, asset)
		}
	}
}

func (v *Validator) validateHooks(hooks map[string][]string) {
	valid := make(map[string]bool, len(allHookPoints))
	for _, p := range allHookPoints {
		valid[string(p)] = true
	}
	for point, commands := range hooks {
		if !valid[point] {
			v.errors.Addf("hooks.%s: not a recognized hook point", point)
			continue
		}
		for i, cmd := range commands {
			if strings.TrimSpace(cmd) == "" {
				v.errors.Addf("hooks.%s[%d]: empty command", point, i)
			}
		}
	}
}

// Validate is a convenience function to validate configuration.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// ValidateAndLoad loads and validates configuration from the current
// directory.
func ValidateAndLoad() (*Config, error) {
	return NewLoader().Load()
}
