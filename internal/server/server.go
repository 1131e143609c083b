package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rizesql/timeserver/internal/o11y/logging"
)

type ServerState int

const (
	ServerStateClosed ServerState = iota
	ServerStateListening
)

type Server struct {
	mu    sync.Mutex
	state ServerState

	logger *logging.Logger
	router chi.Router
	srv    *http.Server
}

func New(logger *logging.Logger, opts ...Option) *Server {
	cfg := Config{MaxReqBodySize: DefaultMaxReqBodySize}
	for _, opt := range opts {
		opt(&cfg)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		WithRequestID,
		middleware.Recoverer,
		CORS,
	)
	if cfg.MaxReqBodySize > 0 {
		router.Use(limitBody(cfg.MaxReqBodySize))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		EncodeError(w, http.StatusNotFound, ErrNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		EncodeError(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
	})

	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	return &Server{
		mu:     sync.Mutex{},
		logger: logger,
		router: router,
		srv:    srv,
	}
}

// Handler returns the root handler with the global middleware chain.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Listen(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.state == ServerStateListening {
		s.logger.Warn("Server is already listening")
		s.mu.Unlock()
		return nil
	}
	s.state = ServerStateListening
	s.mu.Unlock()

	s.logger.Info("listening",
		"srv", "http",
		"addr", ln.Addr().String(),
	)

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Register(r Route, mws ...Middleware) {
	s.logger.Debug("registering",
		"method", r.Method(),
		"path", r.Path(),
	)

	handler := r.Handle()
	for _, mw := range slices.Backward(mws) {
		handler = mw(handler)
	}

	s.router.Method(r.Method(), r.Path(), handler)
}

// Mount attaches a plain handler (e.g. the metrics exposition) under path.
func (s *Server) Mount(method, path string, h http.Handler) {
	s.logger.Debug("mounting",
		"method", method,
		"path", path,
	)
	s.router.Method(method, path, h)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.state = ServerStateClosed
	s.mu.Unlock()

	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}

	return nil
}
