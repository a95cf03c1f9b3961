package sessions

import (
	"net/http"
	"sync"

	"eventsphere/internal/models"
)

// MemoryCartStore keeps carts in memory keyed by a session cookie value.
// Used in tests and as a fallback when cookie sessions are unavailable.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

const memorySessionCookie = "session_id"

// NewMemoryCartStore creates an in-memory cart store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*models.Cart)}
}

func (s *MemoryCartStore) key(r *http.Request) string {
	if c, err := r.Cookie(memorySessionCookie); err == nil {
		return c.Value
	}
	return r.RemoteAddr
}

// Get loads the session's cart, returning an empty cart when absent
func (s *MemoryCartStore) Get(r *http.Request) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[s.key(r)]
	if !ok {
		return &models.Cart{}, nil
	}

	// Copy so callers never mutate the stored cart without a Put.
	lines := make([]models.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return &models.Cart{Lines: lines}, nil
}

// Put stores the cart for the session
func (s *MemoryCartStore) Put(r *http.Request, w http.ResponseWriter, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	s.carts[s.key(r)] = &models.Cart{Lines: lines}
	return nil
}

// Delete removes the session's cart
func (s *MemoryCartStore) Delete(r *http.Request, w http.ResponseWriter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, s.key(r))
	return nil
}
