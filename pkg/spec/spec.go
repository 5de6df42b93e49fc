// Package spec reads gasifier scenario files.
package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ProjectFiles are the names LoadProject looks for, in order.
var ProjectFiles = []string{"gasifier.yaml", "gasifier.yml", "gasifier.toml"}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported scenario file extension %q", filepath.Ext(path))
}

// Load reads a scenario file. Fields missing from the file keep their
// Default values.
func Load(path string) (*Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadProject loads the scenario from a project directory. It looks for
// the first of ProjectFiles in the given directory.
func LoadProject(projectDir string) (*Scenario, error) {
	for _, name := range ProjectFiles {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("no scenario file (%s) in %s", strings.Join(ProjectFiles, ", "), projectDir)
}

// LoadPath loads a scenario from either a file or a project directory.
func LoadPath(path string) (*Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if info.IsDir() {
		return LoadProject(path)
	}
	return Load(path)
}

// Parse decodes a scenario over the defaults. Unknown keys are an error.
func Parse(data []byte, format Format) (*Scenario, error) {
	s := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing scenario YAML: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), s)
		if err != nil {
			return nil, fmt.Errorf("parsing scenario TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("parsing scenario TOML: unknown keys %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing scenario JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}
	return s, nil
}

// Encode writes s in the given format.
func Encode(w io.Writer, s *Scenario, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return fmt.Errorf("unknown scenario format %q", format)
}
