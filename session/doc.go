// Package session is a small cookie-based session manager with pluggable
// storage backends. It exists to give the csrf package a concrete session to
// keep its secret in, but it is usable on its own.
//
// Usage:
//
//	store := session.NewMemoryStore()
//	mgr := session.NewManager(store)
//
//	p := csrf.New(csrf.Config{Sessions: mgr.Lookup})
//	http.ListenAndServe(":8080", mgr.Handler(p.Protect(mux)))
//
// Sessions are loaded from the store when a request carries the session
// cookie and saved right before the response is written. A request without a
// cookie gets a fresh session that is only persisted, and only gets a cookie,
// once a value is set on it.
//
// Design heavily inspired by: https://github.com/alexedwards/scs
package session
