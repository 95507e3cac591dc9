package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// devOrigins are allowed alongside a localhost frontend
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows browser calls from the hireloop frontends. The billing webhook
// is server to server and needs no CORS. Location is exposed so the frontend
// can follow feature-gate redirects to login and pricing.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			RequestIDHeader,
		},
		ExposedHeaders: []string{
			RequestIDHeader,
			"Location",
			"Retry-After",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// AppCORS allows the app origin and the frontend origin, plus local dev
// servers when either is on localhost
func AppCORS(appURL, frontendURL string) func(http.Handler) http.Handler {
	var origins []string
	seen := map[string]bool{}
	add := func(o string) {
		o = strings.TrimRight(o, "/")
		if o != "" && !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}

	add(appURL)
	add(frontendURL)
	if isLocal(appURL) || isLocal(frontendURL) {
		for _, o := range devOrigins {
			add(o)
		}
	}

	return CORS(origins)
}

func isLocal(u string) bool {
	return strings.Contains(u, "localhost") || strings.Contains(u, "127.0.0.1")
}
