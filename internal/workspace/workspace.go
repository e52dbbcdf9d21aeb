// Package workspace locates and reads the baseline.json file that marks
// the root of a multi-repository workspace.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// FileName marks a workspace root. Comments and trailing commas are allowed.
const FileName = "baseline.json"

var ErrNotFound = errors.New("no " + FileName + " found")

type Repo struct {
	Name   string `json:"name"`
	GitURL string `json:"gitUrl,omitempty"`
	Path   string `json:"path,omitempty"`
	Branch string `json:"branch,omitempty"`
}

type Plugin struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
	Source  string `json:"source,omitempty"`
}

type Config struct {
	Name           string   `json:"name"`
	CommandName    string   `json:"commandName,omitempty"` // overrides the root command name
	PackageManager string   `json:"packageManager,omitempty"`
	Repos          []Repo   `json:"repos,omitempty"`
	Plugins        []Plugin `json:"plugins,omitempty"`
}

// FindRoot walks up from start and returns the first directory holding
// FileName, or ErrNotFound.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, FileName))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", filepath.Join(dir, FileName), err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Parse reads a JSONC workspace file.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Load reads the workspace file in root.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// RootCommand returns the configured root command name, or fallback when
// it is unset or not usable as a single command word.
func (c *Config) RootCommand(fallback string) string {
	if c == nil {
		return fallback
	}
	name := strings.TrimSpace(c.CommandName)
	if name == "" || strings.ContainsAny(name, " \t/\\") {
		return fallback
	}
	return name
}

// Discover finds and loads the workspace enclosing dir. Outside a
// workspace it returns an empty root and a nil config without error.
func Discover(dir string) (root string, cfg *Config, err error) {
	root, err = FindRoot(dir)
	if errors.Is(err, ErrNotFound) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	cfg, err = Load(root)
	if err != nil {
		return root, nil, err
	}
	return root, cfg, nil
}
