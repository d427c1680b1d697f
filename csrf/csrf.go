package csrf

import (
	"net/http"
)

// Protect wraps next and enforces CSRF protection.
//
// Behavior:
//   - Ignored methods (GET/HEAD/OPTIONS by default) and requests matched by
//     Skip go straight to next. No session or token work is done.
//   - Any other method: optionally validates Origin/Referer, fetches the
//     session secret (creating it on first use), extracts the client token and
//     verifies it. next only runs when every step succeeds.
//
// Every failure ends in ErrorHandler, 403 by default. next's response is
// passed through untouched.
func (p *Protector) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := p.cfg

		if p.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}

		if cfg.EnforceOriginCheck {
			if err := checkOrigin(r, cfg.AllowedOrigin); err != nil {
				p.reject(w, r, err)
				return
			}
		}

		secret, err := p.secret(r)
		if err != nil {
			p.reject(w, r, err)
			return
		}

		tok, err := cfg.Extractor.Extract(r)
		if err != nil {
			p.reject(w, r, err)
			return
		}
		if tok == "" {
			p.reject(w, r, ErrNoToken)
			return
		}

		if err := Verify(tok, secret); err != nil {
			p.reject(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Token mints a token for the session of r, creating the session secret when
// the session has none yet. Use it in handlers that render forms or set the
// csrf-token response header. It returns ErrNoSession when r has no session.
func (p *Protector) Token(r *http.Request) (string, error) {
	secret, err := p.secret(r)
	if err != nil {
		return "", err
	}
	return issueToken(secret)
}

// TokenHandler returns an HTTP handler that writes a fresh token, both as the
// text/plain body and in the csrf-token header. Useful for SPAs fetching a
// token before their first mutating request.
func (p *Protector) TokenHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := p.Token(r)
		if err != nil {
			p.cfg.Logger.ErrorContext(r.Context(), "csrf: cannot issue token", "error", err)
			http.Error(w, "no token", http.StatusInternalServerError)
			return
		}
		w.Header().Set(HeaderName, tok)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(tok))
	})
}

func (p *Protector) exempt(r *http.Request) bool {
	if _, ok := p.ignored[r.Method]; ok {
		return true
	}
	return p.cfg.Skip != nil && p.cfg.Skip(r)
}

func (p *Protector) secret(r *http.Request) (string, error) {
	sess, ok := p.cfg.Sessions(r)
	if !ok {
		return "", ErrNoSession
	}
	secret, created, err := secretFor(sess)
	if err != nil {
		return "", err
	}
	if created {
		p.cfg.Logger.DebugContext(r.Context(), "csrf: created session secret")
	}
	return secret, nil
}

func (p *Protector) reject(w http.ResponseWriter, r *http.Request, err error) {
	p.cfg.Logger.WarnContext(r.Context(), "csrf: request rejected",
		"method", r.Method,
		"path", r.URL.Path,
		"reason", Reason(err),
		"error", err,
	)
	p.cfg.ErrorHandler(w, r, err)
}
