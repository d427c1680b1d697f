package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/JeanGrijp/go-csrf/csrf"
)

type ctxKey struct{}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name        string
	Path        string
	Domain      string
	Secure      bool
	HttpOnly    bool
	Partitioned bool
	SameSite    http.SameSite
	// Persisted sets Expires/MaxAge. Otherwise the cookie lives until the
	// browser closes.
	Persisted bool
}

// Manager loads and saves sessions around each request.
type Manager struct {
	store       Store
	lifetime    time.Duration
	idleTimeout time.Duration
	cookie      CookieConfig
	logger      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLifetime sets the absolute lifetime of a session. Default: 24h.
func WithLifetime(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.lifetime = d
		}
	}
}

// WithIdleTimeout expires the cookie after d without requests. Zero disables it.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.idleTimeout = d }
}

// WithCookie replaces the cookie configuration. An empty Name keeps the default.
func WithCookie(cfg CookieConfig) Option {
	return func(m *Manager) {
		if cfg.Name == "" {
			cfg.Name = m.cookie.Name
		}
		if cfg.Path == "" {
			cfg.Path = "/"
		}
		m.cookie = cfg
	}
}

// WithLogger sets the logger for store failures. Default discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a Manager keeping sessions in store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		lifetime: 24 * time.Hour,
		cookie: CookieConfig{
			Name:      "session_id",
			Path:      "/",
			HttpOnly:  true,
			SameSite:  http.SameSiteLaxMode,
			Persisted: true,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type responseWriter struct {
	http.ResponseWriter
	r         *http.Request
	mngr      *Manager
	sess      *Session
	isWritten bool
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.flushSession()
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.flushSession()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseWriter) flushSession() {
	if w.isWritten {
		return
	}
	w.isWritten = true
	if err := w.mngr.save(w.r.Context(), w.ResponseWriter, w.sess); err != nil {
		w.mngr.logger.ErrorContext(w.r.Context(), "session: save failed", "error", err)
	}
}

// Handler loads the session named by the request cookie, or starts a new one,
// and saves it before the first byte of the response is written.
func (m *Manager) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Cookie")

		var id string
		if c, err := r.Cookie(m.cookie.Name); err == nil {
			id = c.Value
		}
		sess, err := m.Load(r.Context(), id)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "session: load failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess))
		sw := &responseWriter{ResponseWriter: w, r: r, mngr: m, sess: sess}
		next.ServeHTTP(sw, r)
		sw.flushSession()
	})
}

// FromRequest returns the session loaded by Handler.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	sess, ok := r.Context().Value(ctxKey{}).(*Session)
	return sess, ok && sess != nil
}

// Lookup adapts FromRequest to csrf.SessionLookup.
func (m *Manager) Lookup(r *http.Request) (csrf.Session, bool) {
	sess, ok := m.FromRequest(r)
	if !ok {
		return nil, false
	}
	return sess, true
}

// Load returns the session stored under id. An empty, unknown or expired id
// yields a new session.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return newSession(), nil
	}

	data, found, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return newSession(), nil
	}

	createdAt, values, err := decode(data)
	if err != nil {
		// a corrupt entry is replaced rather than failing every request
		m.logger.WarnContext(ctx, "session: dropping undecodable session", "error", err)
		return newSession(), nil
	}
	return &Session{id: id, createdAt: createdAt, values: values}, nil
}

func (m *Manager) save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	values, isNew, modified, destroyed := sess.snapshot()

	if destroyed {
		if err := m.store.Delete(ctx, sess.id); err != nil {
			return err
		}
		m.writeCookie(w, sess.id, time.Time{})
		return nil
	}

	// nothing worth keeping yet
	if isNew && !modified {
		return nil
	}

	expiresAt := sess.createdAt.Add(m.lifetime)
	if modified {
		data, err := encode(sess.createdAt, values)
		if err != nil {
			return err
		}
		if err := m.store.Set(ctx, sess.id, data, expiresAt); err != nil {
			return err
		}
		sess.markSaved()
	}

	if m.idleTimeout > 0 {
		if idle := time.Now().Add(m.idleTimeout); idle.Before(expiresAt) {
			expiresAt = idle
		}
	}
	m.writeCookie(w, sess.id, expiresAt)
	return nil
}

func (m *Manager) writeCookie(w http.ResponseWriter, id string, expiresAt time.Time) {
	cookie := &http.Cookie{
		Name:        m.cookie.Name,
		Value:       id,
		Path:        m.cookie.Path,
		Domain:      m.cookie.Domain,
		Secure:      m.cookie.Secure,
		HttpOnly:    m.cookie.HttpOnly,
		Partitioned: m.cookie.Partitioned,
		SameSite:    m.cookie.SameSite,
	}

	if expiresAt.IsZero() {
		cookie.Expires = time.Unix(1, 0)
		cookie.MaxAge = -1
	} else if m.cookie.Persisted {
		cookie.Expires = time.Unix(expiresAt.Unix()+1, 0)
		cookie.MaxAge = int(time.Until(expiresAt).Seconds() + 1)
	}

	http.SetCookie(w, cookie)
}
