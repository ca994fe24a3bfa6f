package credential

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPair(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		want      Credentials
		wantErr   error
		wantField string
	}{
		{
			name: "both keys",
			cfg: Config{SectionKey: map[string]any{
				AccessKeyIDKey:     "AKIAEXAMPLE",
				SecretAccessKeyKey: "wJalrXUtnFEMI/K7MDENG",
			}},
			want: Credentials{AccessKeyID: "AKIAEXAMPLE", SecretAccessKey: "wJalrXUtnFEMI/K7MDENG"},
		},
		{
			name: "values are not trimmed or recased",
			cfg: Config{SectionKey: map[string]any{
				AccessKeyIDKey:     " akia ",
				SecretAccessKeyKey: "Secret\t",
			}},
			want: Credentials{AccessKeyID: " akia ", SecretAccessKey: "Secret\t"},
		},
		{
			name: "yaml map[any]any section",
			cfg: Config{SectionKey: map[any]any{
				AccessKeyIDKey:     "id",
				SecretAccessKeyKey: "secret",
			}},
			want: Credentials{AccessKeyID: "id", SecretAccessKey: "secret"},
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: ErrConfigurationMissing,
		},
		{
			name:    "no section",
			cfg:     Config{"type": "static"},
			wantErr: ErrMissingCredentialsSection,
		},
		{
			name:    "null section",
			cfg:     Config{SectionKey: nil},
			wantErr: ErrMissingCredentialsSection,
		},
		{
			name:    "section is a scalar",
			cfg:     Config{SectionKey: "AKIA"},
			wantErr: ErrMissingCredentialsSection,
		},
		{
			name: "access key absent",
			cfg: Config{SectionKey: map[string]any{
				SecretAccessKeyKey: "secret",
			}},
			wantErr:   ErrMissingCredentialField,
			wantField: AccessKeyIDKey,
		},
		{
			name:      "both absent reports access key first",
			cfg:       Config{SectionKey: map[string]any{}},
			wantErr:   ErrMissingCredentialField,
			wantField: AccessKeyIDKey,
		},
		{
			name: "secret empty",
			cfg: Config{SectionKey: map[string]any{
				AccessKeyIDKey:     "id",
				SecretAccessKeyKey: "",
			}},
			wantErr:   ErrEmptyCredentialField,
			wantField: SecretAccessKeyKey,
		},
		{
			name: "secret not a string",
			cfg: Config{SectionKey: map[string]any{
				AccessKeyIDKey:     "id",
				SecretAccessKeyKey: 12345,
			}},
			wantErr:   ErrInvalidCredentialField,
			wantField: SecretAccessKeyKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyPair(tt.cfg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantField, FieldName(err))
				assert.Equal(t, Credentials{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalSection(t *testing.T) {
	fields, err := OptionalSection(Config{})
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = OptionalSection(Config{SectionKey: nil})
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = OptionalSection(Config{SectionKey: map[string]any{"aws_access_key_id_env": "MY_ID"}})
	require.NoError(t, err)
	assert.Equal(t, Fields{"aws_access_key_id_env": "MY_ID"}, fields)

	// A section of the wrong shape is not treated as absent.
	_, err = OptionalSection(Config{SectionKey: []string{"x"}})
	assert.ErrorIs(t, err, ErrMissingCredentialsSection)
	assert.Contains(t, err.Error(), "not a mapping")

	_, err = OptionalSection(nil)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestFieldsStringOr(t *testing.T) {
	f := Fields{"set": "value", "empty": ""}

	got, err := f.StringOr("unset", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)

	got, err = f.StringOr("set", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = f.StringOr("empty", "fallback")
	assert.ErrorIs(t, err, ErrEmptyCredentialField)
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: AccessKeyIDKey, Err: ErrMissingCredentialField}
	assert.Equal(t, "missing credential field: aws_access_key_id", err.Error())
	assert.True(t, errors.Is(err, ErrMissingCredentialField))
	assert.Equal(t, "", FieldName(errors.New("other")))
}
