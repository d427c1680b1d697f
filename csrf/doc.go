// Package csrf provides session-bound CSRF protection for Go net/http servers.
//
// How it works
//   - Every session gets a random secret, stored under SecretKey the first
//     time a token is needed. It is never rotated while the session lives.
//   - A token is salt-digest: a fresh random salt and an HMAC-SHA256 of the
//     salt keyed by the secret. Tokens are stateless; any number of them can
//     be valid for one session, and they stay valid as long as the secret.
//   - Safe methods (GET, HEAD, OPTIONS by default) pass through untouched.
//     Every other method must carry a token for the current session secret or
//     the request is rejected with 403 Forbidden.
//
// # Sessions
//
// The package does not manage sessions. It needs a Session, a string
// key-value map for the current request, found through Config.Sessions.
// The default looks for a session stored with WithSession. The session
// package in this module provides a ready-made implementation.
//
// # Token transport
//
// Clients send the token back as the _csrf query parameter, one of
// DefaultHeaders (csrf-token, x-csrf-token, ...), or a _csrf field in a form
// or JSON body. Replace Config.Extractor to change that.
//
// Typical usage
//
//	p := csrf.New(csrf.Config{Sessions: sessions.Lookup})
//	protected := sessions.Handler(p.Protect(appMux))
//	http.ListenAndServe(":8080", protected)
//
// In handlers, mint tokens for forms or response headers:
//
//	tok, err := p.Token(r)
//	if err != nil {
//	    // no session attached to r
//	}
//	w.Header().Set(csrf.HeaderName, tok)
//
// For SPAs, expose a small endpoint that returns a token:
//
//	r.Get("/csrf-token", p.TokenHandler().ServeHTTP)
package csrf
