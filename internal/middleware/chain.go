package middleware

import "net/http"

// Chain applies middleware in order: the first one listed sees the request first.
//
//	handler := Chain(mux,
//	    Config(cfg),      // Executes first
//	    NonceMiddleware,  // Executes second
//	    WithURLPath,      // Executes last
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
