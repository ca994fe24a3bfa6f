// Package config loads provider profiles from providers.yaml and global
// settings from config.yaml, both under ~/.keypair by default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/majorcontext/keypair/internal/credential"
)

// ErrProfileNotFound is returned when a profile name is not in the file.
var ErrProfileNotFound = errors.New("profile not found")

// File is a parsed providers.yaml.
//
//	providers:
//	  s3-prod:
//	    type: static
//	    credentials:
//	      aws_access_key_id: AKIA...
//	      aws_secret_access_key: ...
type File struct {
	Providers map[string]credential.Config `yaml:"providers"`

	path string
}

// DefaultPath returns $KEYPAIR_CONFIG, or providers.yaml in GlobalConfigDir.
func DefaultPath() string {
	if p := os.Getenv("KEYPAIR_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(GlobalConfigDir(), "providers.yaml")
}

// Load reads and parses the provider file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("provider config %s does not exist", path)
		}
		return nil, fmt.Errorf("reading provider config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// Parse decodes a provider file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing provider config: %w", err)
	}
	if f.Providers == nil {
		f.Providers = make(map[string]credential.Config)
	}
	return &f, nil
}

// Path returns the path the file was loaded from, if any.
func (f *File) Path() string {
	return f.path
}

// Profile returns the configuration of the named profile. The returned
// map is the one held by f, so Refresh on it is visible to providers
// already bound to it.
func (f *File) Profile(name string) (credential.Config, error) {
	cfg, ok := f.Providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	if cfg == nil {
		return nil, fmt.Errorf("profile %q: %w", name, credential.ErrConfigurationMissing)
	}
	return cfg, nil
}

// Names returns the profile names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Providers))
	for name := range f.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refresh replaces the contents of dst with those of src in place.
// Callers must not run it concurrently with a provider reading dst.
func Refresh(dst, src credential.Config) {
	for k := range dst {
		delete(dst, k)
	}
	for k, v := range src {
		dst[k] = v
	}
}
