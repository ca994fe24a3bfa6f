// Package util provides shared helpers for credential strategies and the
// CLI: environment lookup, hidden secret prompts and access key checks.
package util
