// Package env implements a strategy that reads the key pair from
// environment variables instead of the configuration file.
package env

import (
	"github.com/majorcontext/keypair/internal/credential"
	"github.com/majorcontext/keypair/internal/provider"
	"github.com/majorcontext/keypair/internal/provider/util"
)

// Name is the strategy tag.
const Name = "env"

// Configuration keys naming the variables, and their defaults.
const (
	AccessKeyIDEnvKey         = "aws_access_key_id_env"
	SecretAccessKeyEnvKey     = "aws_secret_access_key_env"
	DefaultAccessKeyIDEnv     = "AWS_ACCESS_KEY_ID"
	DefaultSecretAccessKeyEnv = "AWS_SECRET_ACCESS_KEY"
)

// Provider implements provider.Authenticator over environment variables.
type Provider struct {
	cfg     credential.Config
	current credential.Holder
}

var _ provider.Authenticator = (*Provider)(nil)

func init() {
	provider.Register(Name, "Access key pair read from environment variables", func(cfg credential.Config) (provider.Authenticator, error) {
		return New(cfg)
	})
}

// New binds a provider to cfg.
func New(cfg credential.Config) (*Provider, error) {
	if cfg == nil {
		return nil, credential.ErrConfigurationMissing
	}
	return &Provider{cfg: cfg}, nil
}

// Authenticate resolves the variable names from the optional credentials
// section and reads both variables. Errors name the variable, not the
// configuration key.
func (p *Provider) Authenticate() (credential.Credentials, error) {
	fields, err := credential.OptionalSection(p.cfg)
	if err != nil {
		return credential.Credentials{}, err
	}
	idVar, err := fields.StringOr(AccessKeyIDEnvKey, DefaultAccessKeyIDEnv)
	if err != nil {
		return credential.Credentials{}, err
	}
	secretVar, err := fields.StringOr(SecretAccessKeyEnvKey, DefaultSecretAccessKeyEnv)
	if err != nil {
		return credential.Credentials{}, err
	}

	id, err := lookup(idVar)
	if err != nil {
		return credential.Credentials{}, err
	}
	secret, err := lookup(secretVar)
	if err != nil {
		return credential.Credentials{}, err
	}

	creds := credential.Credentials{AccessKeyID: id, SecretAccessKey: secret}
	p.current.Set(creds)
	return creds, nil
}

// CurrentCredentials returns the result of the last successful Authenticate.
func (p *Provider) CurrentCredentials() (credential.Credentials, error) {
	return p.current.Get()
}

func lookup(name string) (string, error) {
	val, _, ok := util.LookupEnv(name)
	if !ok {
		return "", &credential.FieldError{Field: name, Err: credential.ErrMissingCredentialField}
	}
	if val == "" {
		return "", &credential.FieldError{Field: name, Err: credential.ErrEmptyCredentialField}
	}
	return val, nil
}
