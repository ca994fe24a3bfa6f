package credential

import "fmt"

// Fields is the typed view of a credentials section.
type Fields map[string]any

// Section extracts the credentials section from cfg. Both map shapes YAML
// decoders produce for nested mappings are accepted.
func Section(cfg Config) (Fields, error) {
	if cfg == nil {
		return nil, ErrConfigurationMissing
	}
	raw, ok := cfg[SectionKey]
	if !ok || raw == nil {
		return nil, ErrMissingCredentialsSection
	}
	fields, ok := toFields(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %T, not a mapping", ErrMissingCredentialsSection, SectionKey, raw)
	}
	return fields, nil
}

// OptionalSection is like Section but treats an absent or null section
// as empty. A section that is present but not a mapping is still an error.
func OptionalSection(cfg Config) (Fields, error) {
	if cfg != nil {
		if raw, ok := cfg[SectionKey]; !ok || raw == nil {
			return Fields{}, nil
		}
	}
	return Section(cfg)
}

func toFields(raw any) (Fields, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return Fields(m), true
	case Fields:
		return m, true
	case Config:
		return Fields(m), true
	case map[any]any:
		fields := make(Fields, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			fields[key] = v
		}
		return fields, true
	default:
		return nil, false
	}
}

// String returns the value of key verbatim. It fails with a FieldError
// wrapping ErrMissingCredentialField, ErrInvalidCredentialField or
// ErrEmptyCredentialField.
func (f Fields) String(key string) (string, error) {
	raw, ok := f[key]
	if !ok || raw == nil {
		return "", &FieldError{Field: key, Err: ErrMissingCredentialField}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &FieldError{Field: key, Err: fmt.Errorf("%w: got %T", ErrInvalidCredentialField, raw)}
	}
	if s == "" {
		return "", &FieldError{Field: key, Err: ErrEmptyCredentialField}
	}
	return s, nil
}

// StringOr returns the value of key, or def when key is absent.
// A present key must still hold a non-empty string.
func (f Fields) StringOr(key, def string) (string, error) {
	if raw, ok := f[key]; !ok || raw == nil {
		return def, nil
	}
	return f.String(key)
}

// KeyPair reads the access key id and the secret access key, in that
// order, from the credentials section of cfg.
func KeyPair(cfg Config) (Credentials, error) {
	fields, err := Section(cfg)
	if err != nil {
		return Credentials{}, err
	}
	id, err := fields.String(AccessKeyIDKey)
	if err != nil {
		return Credentials{}, err
	}
	secret, err := fields.String(SecretAccessKeyKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessKeyID: id, SecretAccessKey: secret}, nil
}
