package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *SessionManager {
	t.Helper()
	mgr, err := NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), nil, false)
	require.NoError(t, err)
	return mgr
}

func TestNewSessionManagerRequiresHashKey(t *testing.T) {
	t.Parallel()

	_, err := NewSessionManager(nil, nil, false)
	require.ErrorIs(t, err, ErrInvalidSessionConfig)
}

func TestSessionMiddlewareMintsVisitorID(t *testing.T) {
	t.Parallel()

	mgr := testManager(t)

	var visitorID string
	handler := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitorID = GetSession(r).VisitorID()
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, visitorID)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, defaultSessionCookie, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	mgr := testManager(t)

	// First request: mint a session and store some state.
	var firstVisitor string
	rec := httptest.NewRecorder()
	mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r)
		firstVisitor = sess.VisitorID()
		sess.SetCartID("cart-42")
		sess.SetLastQuery("fabric=Silk&minPrice=5000")
		sess.Save(w)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	// The dirty save rewrites the cookie; the last write wins.
	cookie := cookies[len(cookies)-1]

	// Second request carries the cookie back.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	mgr.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		sess := GetSession(r)
		require.Equal(t, firstVisitor, sess.VisitorID())
		require.Equal(t, "cart-42", sess.CartID())
		require.Equal(t, "fabric=Silk&minPrice=5000", sess.LastQuery())
	})).ServeHTTP(httptest.NewRecorder(), req)
}

func TestTamperedCookieStartsFresh(t *testing.T) {
	t.Parallel()

	mgr := testManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: defaultSessionCookie, Value: "garbage"})

	var visitorID string
	mgr.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		visitorID = GetSession(r).VisitorID()
	})).ServeHTTP(httptest.NewRecorder(), req)

	require.NotEmpty(t, visitorID, "tampered cookie falls back to a new session")
}

func TestCSRFTokenIsStable(t *testing.T) {
	t.Parallel()

	sess := &Session{}
	token := sess.CSRFToken()
	require.NotEmpty(t, token)
	require.Equal(t, token, sess.CSRFToken())
}

func TestGetSessionWithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := GetSession(req)
	require.NotNil(t, sess)
	require.Empty(t, sess.VisitorID())
	sess.Save(httptest.NewRecorder()) // must not panic without a manager
}
