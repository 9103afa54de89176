package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	rperrors "github.com/driftship/driftship/internal/errors"
	"github.com/driftship/driftship/internal/phase"
	"github.com/driftship/driftship/internal/ship"
)

// allHookPoints lists every hook point hooks.<phase> may configure, in the
// order they fire.
var allHookPoints = []phase.HookPoint{
	phase.PreShip,
	phase.PreTest, phase.PostTest,
	phase.PreBump, phase.PostBump,
	phase.PrePublish, phase.PostPublish,
	phase.PreTag, phase.PostTag,
	phase.PreRelease, phase.PostRelease,
	phase.PostShip,
}

// envVarPattern matches ${VAR} or ${VAR:-default} syntax.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// Loader discovers and parses a .driftship configuration file with viper:
// an explicit path, a list of search directories, and an environment
// variable overlay, narrowed to the fields ship.Config needs.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
}

// NewLoader creates a configuration loader that searches the current
// directory by default.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("DRIFTSHIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, searchPaths: []string{"."}}
}

// WithConfigPath sets an explicit config file path, bypassing search.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for a config file.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// Load reads the config file (if any) and returns the raw, validated
// Config. Callers that need a ship.Config should use Resolve instead.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	if err := l.loadConfigFile(); err != nil {
		return nil, rperrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, rperrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	expandEnvVars(cfg)

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve loads the config file and folds it into a ship.Config, applying
// the documented defaults for any field left unset.
func (l *Loader) Resolve() (ship.Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return ship.Config{}, err
	}
	return ToShipConfig(cfg), nil
}

// ToShipConfig folds a parsed on-disk Config into the ship.Config the
// orchestrator core consumes.
func ToShipConfig(cfg *Config) ship.Config {
	sc := ship.Config{
		ReleaseBranch:      cfg.Project.ReleaseBranch,
		ProjectType:        cfg.Project.Type,
		VersionStrategy:    cfg.Version.Strategy,
		TestCmd:            cfg.Commands.Test,
		BuildCmd:           cfg.Commands.Build,
		PublishCmd:         cfg.Commands.Publish,
		CleanCmd:           cfg.Commands.Clean,
		GithubRelease:      cfg.Release.GithubRelease,
		Draft:              cfg.Release.Draft,
		Title:              cfg.Release.Title,
		DiscussionCategory: cfg.Release.DiscussionCategory,
		Assets:             cfg.Release.Assets,
		NotesTemplate:      cfg.Release.NotesTemplate,
		ChangelogTool:      cfg.Release.ChangelogTool,
	}

	if len(cfg.Hooks) > 0 {
		sc.Hooks = make(map[phase.HookPoint][]string, len(allHookPoints))
		for _, point := range allHookPoints {
			if cmds, ok := cfg.Hooks[string(point)]; ok {
				sc.Hooks[point] = cmds
			}
		}
	}

	return sc
}

func (l *Loader) configFileExists() bool {
	if l.configPath != "" {
		_, err := os.Stat(l.configPath)
		return err == nil
	}
	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				if _, err := os.Stat(filepath.Join(searchPath, name+"."+ext)); err == nil {
					return true
				}
			}
		}
	}
	return false
}

func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		return nil
	}

	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					l.v.SetConfigFile(configFile)
					if err := l.v.ReadInConfig(); err != nil {
						return fmt.Errorf("reading config file %s: %w", configFile, err)
					}
					return nil
				}
			}
		}
	}

	// No config file found; every field defaults in ToShipConfig's callers.
	return nil
}

// expandEnvVars expands ${VAR}/${VAR:-default} references in the handful of
// fields that plausibly carry secrets or host-specific paths.
func expandEnvVars(cfg *Config) {
	cfg.Release.Title = expandEnvVar(cfg.Release.Title)
	cfg.Release.NotesTemplate = expandEnvVar(cfg.Release.NotesTemplate)
}

func expandEnvVar(s string) string {
	if s == "" || !strings.Contains(s, "${") {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		varName := submatch[1]
		defaultValue := ""
		if len(submatch) > 2 {
			defaultValue = submatch[2]
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// GetConfigPath returns the path to the loaded config file, if any.
func (l *Loader) GetConfigPath() string {
	return l.v.ConfigFileUsed()
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}

// LoadFromDirectory loads configuration from a directory.
func LoadFromDirectory(dir string) (*Config, error) {
	return NewLoader().WithSearchPaths(dir).Load()
}

// ResolveFromDirectory loads and resolves configuration for project root
// dir, returning the ship.Config the orchestrator consumes.
func ResolveFromDirectory(dir string) (ship.Config, error) {
	return NewLoader().WithSearchPaths(dir).Resolve()
}

// FindConfigFile searches for a config file and returns its path.
func FindConfigFile(searchPaths ...string) (string, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	for _, searchPath := range searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				if configFile := filepath.Join(searchPath, name+"."+ext); fileExists(configFile) {
					return configFile, nil
				}
			}
		}
	}
	return "", rperrors.NotFound("config.FindConfigFile", "no config file found")
}

// ConfigExists returns true if a config file exists in the given directory.
func ConfigExists(dir string) bool {
	_, err := FindConfigFile(dir)
	return err == nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
