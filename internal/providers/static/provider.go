// Package static implements the static key-pair strategy: both halves of
// the access key are read from the credentials section of the
// configuration.
package static

import (
	"github.com/majorcontext/keypair/internal/credential"
	"github.com/majorcontext/keypair/internal/provider"
)

// Name is the strategy tag.
const Name = "static"

// Provider implements provider.Authenticator over a bound configuration.
type Provider struct {
	cfg     credential.Config
	current credential.Holder
}

// Compile-time interface assertion.
var _ provider.Authenticator = (*Provider)(nil)

func init() {
	provider.Register(Name, "Access key pair read from the credentials section", func(cfg credential.Config) (provider.Authenticator, error) {
		return New(cfg)
	})
	// Configurations written for the original OAuth plugin name.
	provider.RegisterAlias("oauth", Name)
	provider.RegisterAlias("keypair", Name)
}

// New binds a provider to cfg. The configuration is not validated until
// Authenticate is called.
func New(cfg credential.Config) (*Provider, error) {
	if cfg == nil {
		return nil, credential.ErrConfigurationMissing
	}
	return &Provider{cfg: cfg}, nil
}

// Authenticate reads aws_access_key_id and aws_secret_access_key from the
// credentials section. The configuration is read on every call.
func (p *Provider) Authenticate() (credential.Credentials, error) {
	creds, err := credential.KeyPair(p.cfg)
	if err != nil {
		return credential.Credentials{}, err
	}
	p.current.Set(creds)
	return creds, nil
}

// CurrentCredentials returns the result of the last successful Authenticate.
func (p *Provider) CurrentCredentials() (credential.Credentials, error) {
	return p.current.Get()
}
