package csrf_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanGrijp/go-csrf/csrf"
	"github.com/JeanGrijp/go-csrf/session"
)

func newApp(t *testing.T) http.Handler {
	t.Helper()
	sessions := session.NewManager(session.NewMemoryStore())
	p := csrf.New(csrf.Config{Sessions: sessions.Lookup})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /form", func(w http.ResponseWriter, r *http.Request) {
		tok, err := p.Token(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set(csrf.HeaderName, tok)
		fmt.Fprintf(w, "<input type='hidden' name='_csrf' value='%s'>", tok)
	})
	mux.HandleFunc("POST /submit", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "submitted")
	})

	return sessions.Handler(p.Protect(mux))
}

func TestFormSubmitScenario(t *testing.T) {
	app := newApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	token := rec.Header().Get(csrf.HeaderName)
	require.NotEmpty(t, token)
	require.Contains(t, token, "-")
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "minting a token must persist the session")

	post := func(token string, withCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		if token != "" {
			req.Header.Set(csrf.HeaderName, token)
		}
		if withCookie {
			for _, c := range cookies {
				req.AddCookie(c)
			}
		}
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token and session", func(t *testing.T) {
		rec := post(token, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "submitted", rec.Body.String())
	})

	t.Run("token is reusable", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post(token, true).Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, post("invalidToken", true).Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := post("", true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Missing CSRF token.", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("no session cookie", func(t *testing.T) {
		rec := post(token, false)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Invalid CSRF token.", strings.TrimSpace(rec.Body.String()))
	})
}

func TestSecondFormKeepsFirstTokenValid(t *testing.T) {
	app := newApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	first := rec.Header().Get(csrf.HeaderName)
	cookies := rec.Result().Cookies()

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	second := rec.Header().Get(csrf.HeaderName)
	require.NotEqual(t, first, second)

	for _, tok := range []string{first, second} {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("X-CSRF-Token", tok)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestWithoutSessionMiddleware(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore())
	p := csrf.New(csrf.Config{Sessions: sessions.Lookup})
	h := p.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(csrf.HeaderName, "abc-def")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Session required.", strings.TrimSpace(rec.Body.String()))

	_, err := p.Token(httptest.NewRequest(http.MethodGet, "/form", nil))
	assert.ErrorIs(t, err, csrf.ErrNoSession)
}
