// Package ginx adapts the csrf middleware to Gin.
package ginx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JeanGrijp/go-csrf/csrf"
)

// Protect runs p's check in front of the rest of the Gin chain. Rejected
// requests are aborted after the protector wrote its response.
func Protect(p *csrf.Protector) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		h := p.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			// keep gin context in sync with possibly modified *http.Request
			c.Request = r
			c.Next()
		}))
		h.ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// Token mints a token for the request's session.
func Token(c *gin.Context, p *csrf.Protector) (string, error) {
	return p.Token(c.Request)
}
