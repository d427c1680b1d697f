package csrf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// FieldName is the query, path and body field the default extractor reads.
const FieldName = "_csrf"

// HeaderName is the conventional response header carrying a freshly minted token.
const HeaderName = "csrf-token"

// DefaultHeaders are checked in order by the default extractor.
var DefaultHeaders = []string{
	"_csrf",
	"csrf-token",
	"xsrf-token",
	"x-csrf-token",
	"x-xsrf-token",
	"x-csrftoken",
}

// Extractor finds the candidate token in a request. It returns an error
// wrapping ErrNoToken when the request carries none.
type Extractor interface {
	Extract(r *http.Request) (string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(r *http.Request) (string, error)

func (f ExtractorFunc) Extract(r *http.Request) (string, error) { return f(r) }

// ChainExtractors tries each extractor in order and returns the first token
// found. Errors other than ErrNoToken stop the chain.
func ChainExtractors(extractors ...Extractor) Extractor {
	return ExtractorFunc(func(r *http.Request) (string, error) {
		for _, e := range extractors {
			tok, err := e.Extract(r)
			if err == nil && tok != "" {
				return tok, nil
			}
			if err != nil && !errors.Is(err, ErrNoToken) {
				return "", err
			}
		}
		return "", ErrNoToken
	})
}

// DefaultExtractor looks at the path value and query parameter _csrf, then
// DefaultHeaders, then a _csrf field in a form or JSON body.
func DefaultExtractor() Extractor {
	return defaultExtractor(defaultMaxBodyBytes)
}

func defaultExtractor(maxBody int64) Extractor {
	return ChainExtractors(
		QueryExtractor(FieldName),
		HeaderExtractor(DefaultHeaders...),
		FormExtractor(FieldName),
		JSONExtractor(FieldName, maxBody),
	)
}

// QueryExtractor reads name from the route's path values, then from the URL query.
func QueryExtractor(name string) Extractor {
	return ExtractorFunc(func(r *http.Request) (string, error) {
		if v := r.PathValue(name); v != "" {
			return v, nil
		}
		if v := r.URL.Query().Get(name); v != "" {
			return v, nil
		}
		return "", ErrNoToken
	})
}

// HeaderExtractor returns the first non-empty header among names. Header
// lookup is case-insensitive.
func HeaderExtractor(names ...string) Extractor {
	return ExtractorFunc(func(r *http.Request) (string, error) {
		for _, n := range names {
			if v := r.Header.Get(n); v != "" {
				return v, nil
			}
		}
		return "", ErrNoToken
	})
}

// FormExtractor reads name from an urlencoded or multipart body. The parsed
// form stays available to later handlers through r.PostForm.
func FormExtractor(name string) Extractor {
	return ExtractorFunc(func(r *http.Request) (string, error) {
		switch mediaType(r) {
		case "application/x-www-form-urlencoded", "multipart/form-data":
		default:
			return "", ErrNoToken
		}
		// PostFormValue parses multipart bodies too.
		if v := r.PostFormValue(name); v != "" {
			return v, nil
		}
		return "", ErrNoToken
	})
}

// JSONExtractor reads a top-level string field from a JSON object body. At most
// maxBody bytes are inspected; the body is restored for the next handler.
func JSONExtractor(name string, maxBody int64) Extractor {
	return ExtractorFunc(func(r *http.Request) (string, error) {
		if r.Body == nil || r.Body == http.NoBody || mediaType(r) != "application/json" {
			return "", ErrNoToken
		}

		buf, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil {
			return "", fmt.Errorf("%w: reading body: %v", ErrNoToken, err)
		}
		r.Body = readCloser{io.MultiReader(bytes.NewReader(buf), r.Body), r.Body}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(buf, &fields); err != nil {
			return "", ErrNoToken
		}
		raw, ok := fields[name]
		if !ok {
			return "", ErrNoToken
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || v == "" {
			return "", ErrNoToken
		}
		return v, nil
	})
}

type readCloser struct {
	io.Reader
	io.Closer
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mt
}
