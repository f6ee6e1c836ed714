package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	defaultSessionCookie = "STORE_SESSION"
	defaultLifetime      = 30 * 24 * time.Hour
)

// ErrInvalidSessionConfig indicates the manager was initialised without a
// usable hash key.
var ErrInvalidSessionConfig = errors.New("session: invalid config")

// SessionData is the visitor state persisted in the signed (and
// encrypted, when a block key is set) session cookie. LastQuery keeps the
// visitor's most recent catalog query string so browsing can be resumed;
// it is offered as a link, never applied implicitly.
type SessionData struct {
	VisitorID string    `json:"vid"`
	CartID    string    `json:"cart,omitempty"`
	LastQuery string    `json:"lastQuery,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session wraps the decoded data with a dirty flag for the request
// lifecycle. Handlers mutate through the setters and call Save before
// writing the response body.
type Session struct {
	data  SessionData
	mgr   *SessionManager
	dirty bool
}

// VisitorID returns the stable per-browser identifier.
func (s *Session) VisitorID() string { return s.data.VisitorID }

// CartID returns the cart identifier, empty until a cart exists.
func (s *Session) CartID() string { return s.data.CartID }

// SetCartID records the visitor's cart.
func (s *Session) SetCartID(id string) {
	if s.data.CartID != id {
		s.data.CartID = id
		s.dirty = true
	}
}

// LastQuery returns the saved catalog query string.
func (s *Session) LastQuery() string { return s.data.LastQuery }

// SetLastQuery records the visitor's latest catalog query string.
func (s *Session) SetLastQuery(q string) {
	if s.data.LastQuery != q {
		s.data.LastQuery = q
		s.dirty = true
	}
}

// CSRFToken returns the per-session CSRF token, minting one on first use.
func (s *Session) CSRFToken() string {
	if s.data.CSRFToken == "" {
		s.data.CSRFToken = newToken()
		s.dirty = true
	}
	return s.data.CSRFToken
}

// Save writes the session cookie when the data changed. Must run before
// the response body.
func (s *Session) Save(w http.ResponseWriter) {
	if s == nil || s.mgr == nil || !s.dirty {
		return
	}
	s.data.UpdatedAt = time.Now()
	s.mgr.write(w, s.data)
	s.dirty = false
}

// SessionManager encodes visitor sessions with securecookie.
type SessionManager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	secure     bool
	lifetime   time.Duration
}

// NewSessionManager builds a manager. hashKey is required; blockKey is
// optional and enables encryption on top of signing.
func NewSessionManager(hashKey, blockKey []byte, secure bool) (*SessionManager, error) {
	if len(hashKey) == 0 {
		return nil, ErrInvalidSessionConfig
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &SessionManager{
		codec:      codec,
		cookieName: defaultSessionCookie,
		secure:     secure,
		lifetime:   defaultLifetime,
	}, nil
}

// Middleware loads (or initializes) the visitor session and stores it in
// the request context. New sessions get their cookie immediately so the
// visitor ID is stable from the first response.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)
		if sess.data.VisitorID == "" {
			now := time.Now()
			sess.data = SessionData{
				VisitorID: uuid.NewString(),
				CreatedAt: now,
				UpdatedAt: now,
			}
			m.write(w, sess.data)
		}
		ctx := withSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionManager) load(r *http.Request) *Session {
	sess := &Session{mgr: m}
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return sess
	}
	var data SessionData
	if err := m.codec.Decode(m.cookieName, cookie.Value, &data); err != nil {
		// Tampered or stale cookie: start a fresh session.
		return sess
	}
	sess.data = data
	return sess
}

func (m *SessionManager) write(w http.ResponseWriter, data SessionData) {
	encoded, err := m.codec.Encode(m.cookieName, data)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.lifetime),
	})
}

func withSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// GetSession returns the request's session, or a detached empty session
// when the middleware is not mounted (tests).
func GetSession(r *http.Request) *Session {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return &Session{}
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
