package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// MaxJSONBody bounds JSON request bodies.
const MaxJSONBody = 1 << 20

// ErrBadJSON wraps every body decoding failure.
var ErrBadJSON = errors.New("httpx: malformed JSON body")

// WriteJSON writes v with the given status and disables caching.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets headers that keep tokens and personal data out of caches.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON reads a bounded JSON body into v. An empty body leaves v
// untouched.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	return nil
}

// BaseURL reconstructs the public origin of the request, honouring
// X-Forwarded-Proto from the fronting proxy.
func BaseURL(r *http.Request) string {
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
		if r.TLS != nil {
			proto = "https"
		}
	}
	proto, _, _ = strings.Cut(proto, ",")
	return (&url.URL{Scheme: strings.TrimSpace(proto), Host: r.Host}).String()
}
