// Package credential defines the access-key credential pair, the
// configuration shape providers read it from, and the error kinds a
// provider reports when the configuration does not hold a usable pair.
package credential

import "fmt"

// Configuration keys. The names follow the AWS shared-credentials file
// (aws_access_key_id / aws_secret_access_key), which is also what the
// equivalent environment variables AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY map to.
const (
	SectionKey         = "credentials"
	AccessKeyIDKey     = "aws_access_key_id"
	SecretAccessKeyKey = "aws_secret_access_key"
)

// Config is the loosely-typed configuration a provider is bound to.
// It is owned by the caller; providers only read it.
type Config map[string]any

// Credentials is an access-key pair. A Credentials value returned by a
// provider always has both fields set.
type Credentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// String implements fmt.Stringer without exposing the secret.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{AccessKeyID: %q, SecretAccessKey: %s}", c.AccessKeyID, Redact(c.SecretAccessKey))
}

// Redact masks a secret for display, keeping the last four characters
// of values long enough that doing so does not reveal most of it.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) < 12 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
