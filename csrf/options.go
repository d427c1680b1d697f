package csrf

import (
	"io"
	"log/slog"
	"net/http"
)

// Config drives a Protector. Zero values are replaced by defaults in New.
type Config struct {
	// Methods exempt from the check. Default: GET, HEAD, OPTIONS.
	IgnoredMethods []string

	// Extractor pulls the candidate token out of a request.
	// Default: DefaultExtractor().
	Extractor Extractor

	// Sessions finds the session of a request. Default: SessionFromContext.
	Sessions SessionLookup

	// Skip exempts individual requests (health checks, webhooks) regardless
	// of method.
	Skip func(r *http.Request) bool

	// ErrorHandler writes the rejection. It is called with one of the package
	// errors and must not call the next handler.
	// Default: http.Error with Reason(err) and 403.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	// Extra security
	EnforceOriginCheck bool
	AllowedOrigin      string // if empty, uses r.Host

	// Upper bound for reading a JSON body while looking for the token.
	MaxBodyBytes int64

	// Logger for rejections. Default discards.
	Logger *slog.Logger
}

// Protector holds an immutable Config and is safe for concurrent use.
type Protector struct {
	cfg     Config
	ignored map[string]struct{}
}

// DefaultIgnoredMethods are the methods HTTP defines as safe.
var DefaultIgnoredMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}

const defaultMaxBodyBytes = 1 << 20

// New returns a Protector for cfg, filling unset fields with defaults.
func New(cfg Config) *Protector {
	if cfg.IgnoredMethods == nil {
		cfg.IgnoredMethods = DefaultIgnoredMethods
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Extractor == nil {
		cfg.Extractor = defaultExtractor(cfg.MaxBodyBytes)
	}
	if cfg.Sessions == nil {
		cfg.Sessions = SessionFromContext
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ignored := make(map[string]struct{}, len(cfg.IgnoredMethods))
	for _, m := range cfg.IgnoredMethods {
		ignored[m] = struct{}{}
	}
	// own copy so later changes to the caller's slice don't leak in
	cfg.IgnoredMethods = append([]string(nil), cfg.IgnoredMethods...)

	return &Protector{cfg: cfg, ignored: ignored}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, Reason(err), http.StatusForbidden)
}
