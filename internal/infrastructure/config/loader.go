package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the settings file name inside the config directory
const SettingsFile = "settings.yaml"

// Loader loads settings and level files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadSettings loads settings.yaml
func (l *Loader) LoadSettings() (*Settings, error) {
	data, err := fs.ReadFile(l.fsys, SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	var cfg Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SettingsFile, err)
	}

	return &cfg, nil
}

// LoadLevel loads and validates a level JSON file from dir
func (l *Loader) LoadLevel(dir, name string) (*LevelData, error) {
	p := path.Join(dir, name)
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	var lvl LevelData
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %s: %w", name, err)
	}

	return &lvl, nil
}

// DevMode reports whether the DEV environment variable enables development mode
func DevMode() bool {
	v := os.Getenv("DEV")
	return v != "" && v != "0"
}
