// Package config loads the flux.toml project manifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// ManifestName is the manifest filename looked up next to the sources.
const ManifestName = "flux.toml"

// LanguageVersion is the language revision this front end implements,
// matched against the manifest's `language` constraint.
const LanguageVersion = "0.4.0"

// Manifest is the decoded flux.toml.
type Manifest struct {
	Package Package `toml:"package"`
}

// Package is the [package] section of the manifest.
type Package struct {
	Name      string `toml:"name"`
	Version   string `toml:"version"`
	SourceDir string `toml:"source_dir"`
	// Language is a semver constraint on the language revision, for
	// example ">= 0.3, < 1.0".
	Language string `toml:"language"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Find looks for a manifest in dir and returns it, or nil when dir has
// none. A present-but-invalid manifest is an error.
func Find(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(path)
}

// Validate checks the required fields and that the version fields parse.
func (m *Manifest) Validate() error {
	if m.Package.Name == "" {
		return fmt.Errorf("package.name is required")
	}
	if m.Package.Version != "" {
		if _, err := semver.NewVersion(m.Package.Version); err != nil {
			return fmt.Errorf("package.version %q: %w", m.Package.Version, err)
		}
	}
	if m.Package.Language != "" {
		if _, err := semver.NewConstraint(m.Package.Language); err != nil {
			return fmt.Errorf("package.language %q: %w", m.Package.Language, err)
		}
	}
	return nil
}

// CheckLanguage verifies that the given language revision satisfies the
// manifest's constraint. An absent constraint accepts every revision.
func (m *Manifest) CheckLanguage(version string) error {
	if m.Package.Language == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(m.Package.Language)
	if err != nil {
		return fmt.Errorf("package.language %q: %w", m.Package.Language, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("language revision %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("language revision %s does not satisfy the manifest constraint %q",
			version, m.Package.Language)
	}
	return nil
}

// SourceRoot resolves the manifest's source directory relative to base.
func (m *Manifest) SourceRoot(base string) string {
	if m.Package.SourceDir == "" {
		return base
	}
	return filepath.Join(base, m.Package.SourceDir)
}
