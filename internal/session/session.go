package session

import (
	"crypto/sha256"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// CookieName is the name of the page-flow session cookie.
const CookieName = "recipe-session"

const (
	keyUserID = "user_id"
	keyRole   = "role"

	sessionMaxAge = 24 * 60 * 60
)

var ErrNoSession = errors.New("no valid session")

// Manager signs page-flow sessions with the codecs of a gorilla CookieStore
// and writes them through fiber's cookie API.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager hashes the secret into a 32-byte signing key, so any passphrase
// works. The secret must be stable across restarts.
func NewManager(secret string, secure bool) *Manager {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(sessionMaxAge)

	return &Manager{store: store}
}

func (m *Manager) Save(c *fiber.Ctx, userID, role string) error {
	values := map[interface{}]interface{}{
		keyUserID: userID,
		keyRole:   role,
	}
	encoded, err := securecookie.EncodeMulti(CookieName, values, m.store.Codecs...)
	if err != nil {
		return err
	}
	c.Cookie(m.cookie(encoded, m.store.Options.MaxAge))
	return nil
}

func (m *Manager) Load(c *fiber.Ctx) (string, string, error) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return "", "", ErrNoSession
	}

	values := make(map[interface{}]interface{})
	if err := securecookie.DecodeMulti(CookieName, raw, &values, m.store.Codecs...); err != nil {
		return "", "", ErrNoSession
	}

	userID, _ := values[keyUserID].(string)
	role, _ := values[keyRole].(string)
	if userID == "" {
		return "", "", ErrNoSession
	}
	return userID, role, nil
}

func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *fiber.Cookie {
	opts := m.store.Options
	cookie := &fiber.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     opts.Path,
		MaxAge:   maxAge,
		Secure:   opts.Secure,
		HTTPOnly: opts.HttpOnly,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if maxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	} else {
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
