package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvPathVar names an alternative .env file.
const EnvPathVar = "REGIONSHOT_ENV"

// envKeys maps environment variables onto root configuration keys.
var envKeys = []struct{ env, key string }{
	{"REGIONSHOT_THEME", "theme"},
	{"REGIONSHOT_SHOW_MAGNIFIER", "show_magnifier"},
	{"REGIONSHOT_RELEASE_TO_CAPTURE", "release_to_capture"},
	{"REGIONSHOT_REMEMBER_REGION", "remember_region"},
	{"REGIONSHOT_LIGHT_MASK", "light_mask"},
}

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
	// EnvPath is a .env file whose values sit between the process
	// environment and the rc file in precedence.
	EnvPath string
	// Home overrides the user's home directory.
	Home string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		EnvPath:      resolveEnvPath(),
	}
}

// resolveEnvPath returns the .env next to the executable, or the file
// named by REGIONSHOT_ENV.
func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}
	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

// Load attempts to load the configuration and applies environment
// overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		cfg, err = Parse(f)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) error {
	dotenv := map[string]string{}
	if l.EnvPath != "" {
		values, err := godotenv.Read(l.EnvPath)
		switch {
		case err == nil:
			dotenv = values
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("env file %s: %w", l.EnvPath, err)
		}
	}
	for _, k := range envKeys {
		v, ok := os.LookupEnv(k.env)
		if !ok {
			v, ok = dotenv[k.env]
		}
		if !ok || v == "" {
			continue
		}
		if err := setRootField(cfg, k.key, v); err != nil {
			return fmt.Errorf("%s: %w", k.env, err)
		}
	}
	return nil
}

func (l *Loader) home() string {
	if l.Home != "" {
		return l.Home
	}
	home, _ := os.UserHomeDir()
	return home
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".regionshotrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	xdgPath := l.defaultPath()
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}

func (l *Loader) defaultPath() string {
	return filepath.Join(l.home(), ".config", "regionshot", "config.rc")
}

// Save writes cfg to the file it was loaded from, or to the XDG location
// when none exists yet, and returns the path written.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.GetConfigPath()
	if path == "" {
		path = l.defaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
