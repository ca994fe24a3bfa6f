package provider

import "github.com/majorcontext/keypair/internal/credential"

// TypeKey is the configuration key naming the strategy.
const TypeKey = "type"

// DefaultType is the strategy used when a configuration has no TypeKey.
const DefaultType = "static"

// Authenticator is implemented by all credential strategies.
type Authenticator interface {
	// Authenticate reads the bound configuration and returns a validated
	// key pair, recording it as the current credentials on success.
	Authenticate() (credential.Credentials, error)

	// CurrentCredentials returns the last successful result of
	// Authenticate, or credential.ErrNotAuthenticated.
	CurrentCredentials() (credential.Credentials, error)
}

// Factory constructs an Authenticator bound to cfg.
type Factory func(cfg credential.Config) (Authenticator, error)
