package csrf

import (
	"context"
	"net/http"
)

type ctxKey string

const sessionKey ctxKey = "csrf_session_ctx"

// SessionLookup returns the session attached to r, if any.
type SessionLookup func(r *http.Request) (Session, bool)

// WithSession returns a derived context carrying sess. Session middleware that
// does not want to configure Config.Sessions can call it instead.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext is the default SessionLookup. It reads the session stored
// by WithSession.
func SessionFromContext(r *http.Request) (Session, bool) {
	v := r.Context().Value(sessionKey)
	if v == nil {
		return nil, false
	}
	s, ok := v.(Session)
	return s, ok && s != nil
}
