// Package keychain implements a strategy that keeps only the access key id
// in the configuration and looks the secret up in the OS keychain.
package keychain

import (
	"errors"
	"fmt"

	"github.com/majorcontext/keypair/internal/credential"
	"github.com/majorcontext/keypair/internal/keyring"
	"github.com/majorcontext/keypair/internal/provider"
)

// Name is the strategy tag.
const Name = "keyring"

// ServiceKey names the keyring service in the credentials section.
const ServiceKey = "keyring_service"

// SecretStore is the subset of keyring.Store the provider needs.
type SecretStore interface {
	Get(service, account string) (string, error)
}

// Provider implements provider.Authenticator over a keychain.
type Provider struct {
	cfg     credential.Config
	store   SecretStore
	current credential.Holder
}

var _ provider.Authenticator = (*Provider)(nil)

func init() {
	provider.Register(Name, "Access key id from configuration, secret from the OS keychain", func(cfg credential.Config) (provider.Authenticator, error) {
		if cfg == nil {
			return nil, credential.ErrConfigurationMissing
		}
		store, err := keyring.New()
		if err != nil {
			return nil, err
		}
		return New(cfg, store)
	})
	provider.RegisterAlias("keychain", Name)
}

// New binds a provider to cfg and store.
func New(cfg credential.Config, store SecretStore) (*Provider, error) {
	if cfg == nil {
		return nil, credential.ErrConfigurationMissing
	}
	return &Provider{cfg: cfg, store: store}, nil
}

// Authenticate reads aws_access_key_id and the optional keyring_service
// from the credentials section, then fetches the secret stored for that
// access key id. A missing keychain entry is reported as a missing
// aws_secret_access_key.
func (p *Provider) Authenticate() (credential.Credentials, error) {
	fields, err := credential.Section(p.cfg)
	if err != nil {
		return credential.Credentials{}, err
	}
	id, err := fields.String(credential.AccessKeyIDKey)
	if err != nil {
		return credential.Credentials{}, err
	}
	service, err := fields.StringOr(ServiceKey, keyring.ServiceName())
	if err != nil {
		return credential.Credentials{}, err
	}

	secret, err := p.store.Get(service, id)
	if errors.Is(err, keyring.ErrNotFound) {
		return credential.Credentials{}, &credential.FieldError{
			Field: credential.SecretAccessKeyKey,
			Err:   fmt.Errorf("%w: no keychain entry for %s in service %q: %w", credential.ErrMissingCredentialField, id, service, keyring.ErrNotFound),
		}
	}
	if err != nil {
		return credential.Credentials{}, fmt.Errorf("reading secret for %s: %w", id, err)
	}
	if secret == "" {
		return credential.Credentials{}, &credential.FieldError{Field: credential.SecretAccessKeyKey, Err: credential.ErrEmptyCredentialField}
	}

	creds := credential.Credentials{AccessKeyID: id, SecretAccessKey: secret}
	p.current.Set(creds)
	return creds, nil
}

// CurrentCredentials returns the result of the last successful Authenticate.
func (p *Provider) CurrentCredentials() (credential.Credentials, error) {
	return p.current.Get()
}
