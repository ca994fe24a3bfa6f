package credential

import "sync"

// Holder keeps the last successfully produced Credentials.
// The zero value is ready to use and unauthenticated.
type Holder struct {
	mu    sync.RWMutex
	creds *Credentials
}

// Set records c as the current credentials.
func (h *Holder) Set(c Credentials) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.creds = &c
}

// Get returns the current credentials or ErrNotAuthenticated.
func (h *Holder) Get() (Credentials, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.creds == nil {
		return Credentials{}, ErrNotAuthenticated
	}
	return *h.creds, nil
}
