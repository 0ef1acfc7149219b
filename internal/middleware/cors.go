// Package middleware provides reusable HTTP middleware for the local wizard API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that lets the wizard UI served from
// allowedOrigins call the API. Each origin must be a full scheme + host with
// no trailing slash. Location is exposed so the UI can follow a created trip,
// X-Request-Id so it can quote a request when reporting a problem.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location", "X-Request-Id"},
		MaxAge:         600,
	})
	return c.Handler
}
