package handler

import "net/http"

// requestOrigin derives the externally visible base URL (scheme + host,
// trailing slash included) from the inbound request. Behind a proxy the
// scheme comes from X-Forwarded-Proto.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host + "/"
}
