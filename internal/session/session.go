package session

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/naturalhealing/booking/internal/models"
	"golang.org/x/crypto/hkdf"
)

const cookieName = "booking_session"

const (
	keyName          = "name"
	keyPhone         = "phone"
	keyRegistered    = "registered"
	keyAuthenticated = "logged_in"
)

// Context is the typed view of one browser client's session.
type Context struct {
	Name          string
	Phone         string
	Registered    bool
	Authenticated bool
}

// Registration returns the stored visitor identity and whether one exists.
func (c *Context) Registration() (models.Registration, bool) {
	return models.Registration{Name: c.Name, Phone: c.Phone}, c.Registered
}

// Store persists Context values in a signed, encrypted cookie.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore derives the cookie keys from secret.
func NewStore(secret string) (*Store, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	hashKey, blockKey, err := DeriveKeys(secret)
	if err != nil {
		return nil, err
	}

	cookies := sessions.NewCookieStore(hashKey, blockKey)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cookies}, nil
}

// DeriveKeys expands secret into a 32-byte HMAC key and a 32-byte AES key.
func DeriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("booking session cookie"))
	hashKey = make([]byte, 32)
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(r, hashKey); err != nil {
		return nil, nil, fmt.Errorf("failed to derive session keys: %w", err)
	}
	if _, err := io.ReadFull(r, blockKey); err != nil {
		return nil, nil, fmt.Errorf("failed to derive session keys: %w", err)
	}
	return hashKey, blockKey, nil
}

// Load reads the client's session. A missing cookie yields an empty
// Context; an undecodable one yields an empty Context and the decode error.
func (s *Store) Load(r *http.Request) (*Context, error) {
	sess, err := s.cookies.Get(r, cookieName)
	ctx := &Context{}
	if sess != nil {
		ctx.Name, _ = sess.Values[keyName].(string)
		ctx.Phone, _ = sess.Values[keyPhone].(string)
		ctx.Registered, _ = sess.Values[keyRegistered].(bool)
		ctx.Authenticated, _ = sess.Values[keyAuthenticated].(bool)
	}
	if err != nil {
		return &Context{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return ctx, nil
}

// Save writes ctx back to the client's cookie.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, ctx *Context) error {
	// Get only fails on decode; the returned session is still usable.
	sess, _ := s.cookies.Get(r, cookieName)
	if sess == nil {
		sess = sessions.NewSession(s.cookies, cookieName)
	}

	if ctx.Registered {
		sess.Values[keyName] = ctx.Name
		sess.Values[keyPhone] = ctx.Phone
		sess.Values[keyRegistered] = true
	} else {
		delete(sess.Values, keyName)
		delete(sess.Values, keyPhone)
		delete(sess.Values, keyRegistered)
	}
	if ctx.Authenticated {
		sess.Values[keyAuthenticated] = true
	} else {
		delete(sess.Values, keyAuthenticated)
	}

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
