//go:build windows

package keyring

import "os"

// lockFile is a no-op on Windows. Credential Manager is the primary
// backend there and the file fallback is only used in headless setups.
func lockFile(_ *os.File) (unlock func(), err error) {
	return func() {}, nil
}
