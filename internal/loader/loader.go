// Package loader reads Mamba source files for the CLI.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SourceFileExtension is the Mamba source suffix.
	SourceFileExtension = ".mamba"

	// ProjectConfigFile is the project configuration file name.
	ProjectConfigFile = "mamba.toml"
)

// LoadSource reads a source file and returns its text. A missing
// extension is tried with the Mamba suffix appended, so "mamba check main"
// finds main.mamba.
func LoadSource(path string) (string, string, error) {
	candidate := path
	if _, err := os.Stat(candidate); os.IsNotExist(err) && filepath.Ext(path) == "" {
		candidate = path + SourceFileExtension
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		return "", "", fmt.Errorf("cannot read %s: %w", candidate, err)
	}

	return string(data), candidate, nil
}

// FindProjectConfig walks up from dir looking for mamba.toml; empty when
// no project root exists.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// IsSourceFile reports whether the path has the Mamba suffix.
func IsSourceFile(path string) bool {
	return strings.HasSuffix(path, SourceFileExtension)
}
