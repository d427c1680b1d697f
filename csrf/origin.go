package csrf

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// checkOrigin requires Origin (or Referer when Origin is absent) to point at
// allowed, or at r.Host when allowed is empty.
func checkOrigin(r *http.Request, allowed string) error {
	host := allowed
	if host == "" {
		host = r.Host
	}

	origin := r.Header.Get("Origin")
	ref := r.Header.Get("Referer")

	switch {
	case origin == "" && ref == "":
		return fmt.Errorf("%w: no origin or referer", ErrBadOrigin)
	case origin != "" && !sameHost(origin, host):
		return fmt.Errorf("%w: origin %q", ErrBadOrigin, origin)
	case origin == "" && !sameHost(ref, host):
		return fmt.Errorf("%w: referer %q", ErrBadOrigin, ref)
	}
	return nil
}

// sameHost compares only the host part (port included) of rawURL with host.
func sameHost(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
