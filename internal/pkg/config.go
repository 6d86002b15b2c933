// Package pkg handles the mamba.toml project configuration.
package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigFileName is the project configuration file.
	ConfigFileName = "mamba.toml"
)

// ProjectConfig is the content of mamba.toml.
type ProjectConfig struct {
	Package PackageInfo `toml:"package"`
	Build   BuildInfo   `toml:"build"`
}

// PackageInfo describes the project.
type PackageInfo struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// BuildInfo holds backend options for the (future) build pipeline.
type BuildInfo struct {
	// Backend names the code generation backend.
	Backend string `toml:"backend"`

	// Output is the binary output path; empty means the package name.
	Output string `toml:"output"`
}

// LoadConfig reads and decodes a mamba.toml.
func LoadConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ProjectConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Save writes the configuration with section comments.
func (c *ProjectConfig) Save(path string) error {
	content := generateConfigWithComments(c)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func generateConfigWithComments(c *ProjectConfig) string {
	var sb strings.Builder

	sb.WriteString("[package]\n")
	sb.WriteString(fmt.Sprintf("name = %q\n", c.Package.Name))
	sb.WriteString(fmt.Sprintf("version = %q\n\n", c.Package.Version))

	sb.WriteString("[build]\n")
	sb.WriteString("# code generation backend\n")
	sb.WriteString(fmt.Sprintf("backend = %q\n", c.Build.Backend))
	sb.WriteString("# output binary path; defaults to the package name\n")
	sb.WriteString(fmt.Sprintf("output = %q\n", c.Build.Output))

	return sb.String()
}

// GenerateDefault builds a default configuration named after the project
// directory.
func GenerateDefault(dir string) *ProjectConfig {
	baseName := filepath.Base(dir)
	if baseName == "" || baseName == "." || baseName == "/" {
		baseName = "my-app"
	}

	return &ProjectConfig{
		Package: PackageInfo{
			Name:    sanitizeName(baseName),
			Version: "0.1.0",
		},
		Build: BuildInfo{
			Backend: "rustc",
		},
	}
}

// sanitizeName lowercases the name and strips characters that are not
// legal in a package name.
func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")

	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' {
			result.WriteRune(r)
		}
	}

	s := result.String()
	if s == "" {
		return "my-app"
	}
	return s
}
