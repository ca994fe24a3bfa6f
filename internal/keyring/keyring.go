// Package keyring stores secret access keys outside the configuration file.
//
// Platform requirements:
//   - macOS: Uses Keychain via Security framework (works out of the box)
//   - Linux: Requires libsecret (GNOME), kwallet (KDE), or pass (CLI)
//   - Windows: Uses Windows Credential Manager (works out of the box)
//   - Headless/CI: Falls back to files under ~/.keypair/secrets
//
// Secrets are addressed by (service, account); the keyring strategy uses the
// access key id as the account. The file backend refuses to read secrets
// from files that are readable by group or others.
package keyring

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

// DefaultService is the default keyring service identifier.
// Can be overridden with KEYPAIR_KEYRING_SERVICE for test isolation.
const DefaultService = "keypair"

var (
	// ErrNotFound is returned when no secret is stored for (service, account).
	ErrNotFound = errors.New("secret not found")
	// ErrInsecurePermissions is returned when a secret file is group or world accessible.
	ErrInsecurePermissions = errors.New("secret file has insecure permissions")
	// ErrInvalidAccount is returned for account names that cannot be stored.
	ErrInvalidAccount = errors.New("invalid account name")
)

// ServiceName returns the service to use when none is configured.
func ServiceName() string {
	if name := os.Getenv("KEYPAIR_KEYRING_SERVICE"); name != "" {
		return name
	}
	return DefaultService
}

// Backend stores secrets for (service, account) pairs.
type Backend interface {
	Get(service, account string) (string, error)
	Set(service, account, secret string) error
	Delete(service, account string) error
	Name() string
}

// keychainBackend stores secrets in the system keychain.
type keychainBackend struct{}

func (k *keychainBackend) Get(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keychain get: %w", err)
	}
	return secret, nil
}

func (k *keychainBackend) Set(service, account, secret string) error {
	if err := keyring.Set(service, account, secret); err != nil {
		return fmt.Errorf("keychain set: %w", err)
	}
	return nil
}

func (k *keychainBackend) Delete(service, account string) error {
	err := keyring.Delete(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("keychain delete: %w", err)
	}
	return nil
}

func (k *keychainBackend) Name() string {
	return "system keychain"
}

// fileBackend stores one secret per file with restricted permissions.
type fileBackend struct {
	dir string
}

func (f *fileBackend) path(service, account string) (string, error) {
	if account == "" || account == "." || account == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}
	if service == "" || service == "." || service == ".." {
		return "", fmt.Errorf("invalid service name %q", service)
	}
	return filepath.Join(f.dir, url.PathEscape(service), url.PathEscape(account)), nil
}

func (f *fileBackend) Get(service, account string) (string, error) {
	path, err := f.path(service, account)
	if err != nil {
		return "", err
	}

	// Check permissions before reading; a readable file may have leaked.
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading secret file: %w", err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		return "", fmt.Errorf("%w: %s has permissions %04o (expected 0600).\n"+
			"  The secret may have been exposed. To fix:\n"+
			"  1. chmod 600 %s\n"+
			"  2. Consider rotating the access key and running: keypair keys set %s",
			ErrInsecurePermissions, path, perm, path, account)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading secret file: %w", err)
	}
	// Trim the trailing newline editors add.
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (f *fileBackend) Set(service, account, secret string) error {
	path, err := f.path(service, account)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating secret directory: %w", err)
	}

	// Serialize writers for the service; the lock file stays behind and
	// is reused by the next writer.
	lf, err := os.OpenFile(filepath.Join(dir, ".lock"), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("creating lock file: %w", err)
	}
	defer lf.Close()

	unlock, err := lockFile(lf)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(secret), 0600); err != nil {
		return fmt.Errorf("writing secret file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing secret file: %w", err)
	}
	return nil
}

func (f *fileBackend) Delete(service, account string) error {
	path, err := f.path(service, account)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting secret file: %w", err)
	}
	return nil
}

func (f *fileBackend) Name() string {
	return "file (" + f.dir + ")"
}

// ErrNoHomeDirectory is returned when the home directory cannot be determined.
var ErrNoHomeDirectory = errors.New("could not determine home directory for secret storage")

// DefaultSecretsDir returns the directory used by the file backend.
// Temp directories are never used as a fallback: they may be shared
// between users or cleared on reboot.
func DefaultSecretsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		if envHome := os.Getenv("HOME"); envHome != "" {
			return filepath.Join(envHome, ".keypair", "secrets"), nil
		}
		return "", fmt.Errorf("%w: set $HOME environment variable or ensure user home is configured", ErrNoHomeDirectory)
	}
	return filepath.Join(home, ".keypair", "secrets"), nil
}

// Store reads from the system keychain first and falls back to files.
type Store struct {
	primary  Backend
	fallback Backend
}

// New returns a Store over the system keychain and the default secrets
// directory.
func New() (*Store, error) {
	dir, err := DefaultSecretsDir()
	if err != nil {
		return nil, err
	}
	return NewStore(&keychainBackend{}, &fileBackend{dir: dir}), nil
}

// NewStore returns a Store over the given backends.
func NewStore(primary, fallback Backend) *Store {
	return &Store{primary: primary, fallback: fallback}
}

// NewFileBackend returns a Backend storing secrets under dir.
func NewFileBackend(dir string) Backend {
	return &fileBackend{dir: dir}
}

// NewKeychainBackend returns a Backend over the system keychain.
func NewKeychainBackend() Backend {
	return &keychainBackend{}
}

// Get returns the secret for (service, account).
func (s *Store) Get(service, account string) (string, error) {
	secret, primaryErr := s.primary.Get(service, account)
	if primaryErr == nil {
		return secret, nil
	}

	secret, fallbackErr := s.fallback.Get(service, account)
	if fallbackErr == nil {
		return secret, nil
	}
	if errors.Is(fallbackErr, ErrNotFound) {
		if !errors.Is(primaryErr, ErrNotFound) {
			slog.Debug("keychain lookup failed", "backend", s.primary.Name(), "error", primaryErr)
		}
		return "", fmt.Errorf("%w: %s/%s", ErrNotFound, service, account)
	}
	return "", fallbackErr
}

// Set stores secret for (service, account), replacing any previous value.
func (s *Store) Set(service, account, secret string) error {
	primaryErr := s.primary.Set(service, account, secret)
	if primaryErr == nil {
		// Drop a stale copy so the two backends cannot disagree.
		if err := s.fallback.Delete(service, account); err != nil && !errors.Is(err, ErrNotFound) {
			slog.Debug("removing fallback secret", "backend", s.fallback.Name(), "error", err)
		}
		return nil
	}

	slog.Info("system keychain unavailable, using file-based secret storage",
		"fallback", s.fallback.Name())
	if fallbackErr := s.fallback.Set(service, account, secret); fallbackErr != nil {
		return fmt.Errorf("storing secret failed.\n"+
			"  Keychain (%s): %v\n"+
			"  File (%s): %v\n"+
			"Remediation: Ensure ~/.keypair is writable and check system keychain access settings",
			s.primary.Name(), primaryErr, s.fallback.Name(), fallbackErr)
	}
	return nil
}

// Delete removes the secret for (service, account) from both backends.
// It fails with ErrNotFound only if neither backend held it.
func (s *Store) Delete(service, account string) error {
	primaryErr := s.primary.Delete(service, account)
	fallbackErr := s.fallback.Delete(service, account)

	switch {
	case primaryErr == nil || fallbackErr == nil:
		return nil
	case errors.Is(primaryErr, ErrNotFound) && errors.Is(fallbackErr, ErrNotFound):
		return fmt.Errorf("%w: %s/%s", ErrNotFound, service, account)
	default:
		return fmt.Errorf("deleting secret from all backends: %w",
			errors.Join(
				fmt.Errorf("keychain: %w", primaryErr),
				fmt.Errorf("file: %w", fallbackErr),
			))
	}
}
