package util

import "fmt"

// AWS access key IDs are 16 to 128 characters of upper-case letters and
// digits (IAM API reference, AccessKey.AccessKeyId).
const (
	minAccessKeyIDLen = 16
	maxAccessKeyIDLen = 128
)

// ValidateAccessKeyID checks that id looks like an AWS-style access key id.
// Other stores issue ids of the same shape, so only the alphabet and
// length are checked, not the AKIA/ASIA prefix.
func ValidateAccessKeyID(id string) error {
	if len(id) < minAccessKeyIDLen || len(id) > maxAccessKeyIDLen {
		return fmt.Errorf("access key id must be %d to %d characters, got %d", minAccessKeyIDLen, maxAccessKeyIDLen, len(id))
	}
	for i, r := range id {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return fmt.Errorf("access key id has invalid character %q at position %d", r, i)
		}
	}
	return nil
}
