package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/majorcontext/keypair/internal/credential"
)

type entry struct {
	description string
	factory     Factory
}

var (
	mu        sync.RWMutex
	factories = make(map[string]entry)
	aliases   = make(map[string]string) // alias -> canonical name
)

// Register adds a strategy to the registry under name.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = entry{description: description, factory: f}
}

// RegisterAlias registers an alternative type tag for a strategy.
// For example: RegisterAlias("oauth", "static") lets configurations
// written as "type: oauth" select the static strategy.
func RegisterAlias(alias, canonical string) {
	mu.Lock()
	defer mu.Unlock()
	aliases[alias] = canonical
}

// ResolveName returns the canonical strategy name for a given name or alias.
// If the name is directly registered or unknown, it is returned as-is.
func ResolveName(name string) string {
	mu.RLock()
	defer mu.RUnlock()
	return resolveLocked(name)
}

func resolveLocked(name string) string {
	if _, ok := factories[name]; ok {
		return name
	}
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Lookup returns the factory registered under name or alias.
func Lookup(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := factories[resolveLocked(name)]
	if !ok {
		return nil, false
	}
	return e.factory, true
}

// TypeOf returns the strategy tag of cfg, or DefaultType when unset.
func TypeOf(cfg credential.Config) (string, error) {
	raw, ok := cfg[TypeKey]
	if !ok || raw == nil {
		return DefaultType, nil
	}
	name, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrInvalidProviderType, raw)
	}
	if name == "" {
		return DefaultType, nil
	}
	return name, nil
}

// New constructs the strategy selected by the "type" tag of cfg.
func New(cfg credential.Config) (Authenticator, error) {
	if cfg == nil {
		return nil, credential.ErrConfigurationMissing
	}
	name, err := TypeOf(cfg)
	if err != nil {
		return nil, err
	}
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}
	return f(cfg)
}

// Info describes a registered strategy.
type Info struct {
	Name        string
	Description string
	Aliases     []string
}

// Describe returns all registered strategies sorted by name.
func Describe() []Info {
	mu.RLock()
	defer mu.RUnlock()
	infos := make([]Info, 0, len(factories))
	for name, e := range factories {
		info := Info{Name: name, Description: e.description}
		for alias, canonical := range aliases {
			if canonical == name {
				info.Aliases = append(info.Aliases, alias)
			}
		}
		sort.Strings(info.Aliases)
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Names returns the names of all registered strategies, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registered strategies and aliases. For testing only.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	factories = make(map[string]entry)
	aliases = make(map[string]string)
}
