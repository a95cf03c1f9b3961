package sessions

import (
	"encoding/json"
	"net/http"

	"eventsphere/internal/models"

	"github.com/gorilla/sessions"
)

const (
	sessionName  = "session"
	cartValueKey = "cart"
)

// CartStore persists a session's cart between requests. The cart logic
// operates on the in-memory value; handlers load it here, mutate it, and put
// it back.
type CartStore interface {
	Get(r *http.Request) (*models.Cart, error)
	Put(r *http.Request, w http.ResponseWriter, cart *models.Cart) error
	Delete(r *http.Request, w http.ResponseWriter) error
}

// CookieCartStore keeps the cart as a JSON blob inside a cookie-backed
// session.
type CookieCartStore struct {
	store sessions.Store
}

// NewCookieCartStore creates a cart store on top of a gorilla session store
func NewCookieCartStore(store sessions.Store) *CookieCartStore {
	return &CookieCartStore{store: store}
}

// NewCookieStore builds the application's cookie session store
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Get loads the session's cart. A missing or unreadable cart yields a fresh
// empty one.
func (s *CookieCartStore) Get(r *http.Request) (*models.Cart, error) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return &models.Cart{}, nil
	}

	raw, ok := session.Values[cartValueKey].(string)
	if !ok {
		return &models.Cart{}, nil
	}

	cart := &models.Cart{}
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		return &models.Cart{}, nil
	}

	return cart, nil
}

// Put serializes the cart back into the session
func (s *CookieCartStore) Put(r *http.Request, w http.ResponseWriter, cart *models.Cart) error {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	session.Values[cartValueKey] = string(raw)
	return session.Save(r, w)
}

// Delete removes the cart from the session
func (s *CookieCartStore) Delete(r *http.Request, w http.ResponseWriter) error {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return err
	}

	delete(session.Values, cartValueKey)
	return session.Save(r, w)
}
