package cli

import (
	"errors"
	"fmt"

	"github.com/majorcontext/keypair/internal/config"
	"github.com/majorcontext/keypair/internal/credential"
	"github.com/majorcontext/keypair/internal/keyring"
	"github.com/majorcontext/keypair/internal/provider"
)

// providersPath returns the provider file selected by --config or the default.
func providersPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func loadProviders() (*config.File, error) {
	return config.Load(providersPath())
}

// newAuthenticator builds the strategy for the named profile in f.
func newAuthenticator(f *config.File, profile string) (provider.Authenticator, credential.Config, error) {
	cfg, err := f.Profile(profile)
	if err != nil {
		return nil, nil, err
	}
	auth, err := provider.New(cfg)
	if err != nil {
		return nil, cfg, wrapAuthError(profile, err)
	}
	return auth, cfg, nil
}

// wrapAuthError attaches a remediation hint to err when one is known.
func wrapAuthError(profile string, err error) error {
	if err == nil {
		return nil
	}
	return &provider.AuthError{Profile: profile, Cause: err, Hint: hintFor(err)}
}

func hintFor(err error) string {
	field := credential.FieldName(err)
	switch {
	case errors.Is(err, provider.ErrProviderNotFound), errors.Is(err, provider.ErrInvalidProviderType):
		return "Run 'keypair providers' to list the available types."
	case errors.Is(err, credential.ErrConfigurationMissing):
		return "The profile has no settings. Add at least a type and a credentials section."
	case errors.Is(err, credential.ErrMissingCredentialsSection):
		return fmt.Sprintf("Add a %s section with %s and %s to the profile.",
			credential.SectionKey, credential.AccessKeyIDKey, credential.SecretAccessKeyKey)
	case errors.Is(err, keyring.ErrNotFound):
		return "Store the secret with: keypair keys set <access-key-id>"
	case errors.Is(err, credential.ErrMissingCredentialField) && field != "":
		return fmt.Sprintf("Set %s for this profile.", field)
	case errors.Is(err, credential.ErrEmptyCredentialField) && field != "":
		return fmt.Sprintf("%s is set but empty.", field)
	case errors.Is(err, credential.ErrInvalidCredentialField) && field != "":
		return fmt.Sprintf("%s must be a string. Quote the value in YAML.", field)
	}
	return ""
}
