// Package providers registers all built-in credential strategies.
//
// Import this package to ensure all strategies are registered with the
// registry. Each strategy's init() function handles its own registration.
package providers

import (
	// Import all strategies to trigger their init() registration.
	_ "github.com/majorcontext/keypair/internal/providers/env"      // registers "env"
	_ "github.com/majorcontext/keypair/internal/providers/keychain" // registers "keyring"
	_ "github.com/majorcontext/keypair/internal/providers/static"   // registers "static", "oauth"
)

// RegisterAll is a no-op provided for explicit registration semantics.
// All strategies self-register via init() when this package is imported.
func RegisterAll() {}
