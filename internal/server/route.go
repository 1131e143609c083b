package server

import "net/http"

// Route is one method and path pair served by a handler.
type Route interface {
	Method() string
	Path() string
	Handle() http.HandlerFunc
}

type Middleware func(http.HandlerFunc) http.HandlerFunc

// RegisterAll registers every route with the same route-level middleware.
func (s *Server) RegisterAll(routes []Route, mws ...Middleware) {
	for _, r := range routes {
		s.Register(r, mws...)
	}
}
