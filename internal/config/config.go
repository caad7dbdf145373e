// Package config discovers, decodes and validates the regex_commit options.
//
// Options can live in a dedicated YAML file or inside the TOML tables a
// hatch project already uses. Whatever the origin, values are type checked
// once here so later stages never see a mistyped option.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables consulted by Load.
const (
	EnvConfig = "REGEXCOMMIT_CONFIG"
	EnvPath   = "REGEXCOMMIT_PATH"
)

// Configuration file names, in discovery order.
const (
	YAMLFile      = ".regexcommit.yaml"
	HatchFile     = "hatch.toml"
	PyProjectFile = "pyproject.toml"
)

// ErrNotFound is returned when no configuration exists in the project.
var ErrNotFound = errors.New("no regex_commit configuration found")

// Config is a loaded configuration and where it came from.
type Config struct {
	// File is the configuration file, empty when options came from
	// elsewhere.
	File string

	// Root is the project directory; relative paths resolve against it.
	Root string

	Options Options
}

// VersionFile returns the configured path joined to Root when relative.
func (c *Config) VersionFile() string {
	if filepath.IsAbs(c.Options.Path) || c.Root == "" {
		return c.Options.Path
	}
	return filepath.Join(c.Root, c.Options.Path)
}

// LoadConfigFn is the loader used by the CLI; tests may replace it.
var LoadConfigFn = Load

// Load finds and validates the configuration for the project in root.
// An explicit file, or $REGEXCOMMIT_CONFIG, short-circuits discovery.
func Load(root, explicit string) (*Config, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}

	var (
		raw  map[string]any
		file string
		err  error
	)
	if explicit != "" {
		file = explicit
		raw, err = readFile(explicit)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, fmt.Errorf("%s: %w", explicit, ErrNotFound)
		}
	} else {
		raw, file, err = discover(root)
		if err != nil {
			return nil, err
		}
	}

	if envPath := os.Getenv(EnvPath); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		if !filepath.IsAbs(cleanPath) && strings.HasPrefix(cleanPath, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvPath)
		}
		raw[KeyPath] = cleanPath
	}

	opts, err := FromMap(raw)
	if err != nil {
		if file != "" {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		return nil, err
	}

	return &Config{File: file, Root: root, Options: opts}, nil
}

// discover tries each known file under root in order and returns the first
// one carrying a configuration table.
func discover(root string) (map[string]any, string, error) {
	for _, name := range []string{YAMLFile, HatchFile, PyProjectFile} {
		path := filepath.Join(root, name)
		raw, err := readFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", err
		}
		if raw != nil {
			return raw, path, nil
		}
	}
	return nil, "", ErrNotFound
}

// readFile decodes path and returns its option table, or nil when the file
// exists but has no table for this source.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML(path, data)
	case ".yaml", ".yml":
		return decodeYAML(path, data)
	default:
		return nil, fmt.Errorf("unsupported configuration file %q: expected .yaml, .yml or .toml", path)
	}
}

func decodeYAML(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// decodeTOML returns [version] from hatch.toml, [tool.hatch.version] from
// pyproject.toml and the root table of any other TOML file. For the hatch
// files, a table selecting a different source counts as absent.
func decodeTOML(path string, data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var tablePath []string
	switch filepath.Base(path) {
	case PyProjectFile:
		tablePath = []string{"tool", "hatch", "version"}
	case HatchFile:
		tablePath = []string{"version"}
	default:
		return doc, nil
	}

	table, ok := lookupTable(doc, tablePath)
	if !ok {
		return nil, nil
	}
	if src, ok := table[KeySource].(string); ok && src != SourceName {
		return nil, nil
	}
	return table, nil
}

func lookupTable(doc map[string]any, keys []string) (map[string]any, bool) {
	current := doc
	for _, k := range keys {
		next, ok := current[k].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
