// Package api exposes the scene pipeline over HTTP.
//
// The server mirrors the CLI's behavior exactly: both sit on the same
// [pipeline.Runner], so a scene built over HTTP is byte-identical to one
// built locally with the same inputs. Endpoints:
//
//	POST /v1/scenes        build a scene from a sheet ID or inline graph
//	GET  /v1/graphs        list saved graphs (requires a store)
//	PUT  /v1/graphs/{name} save a graph under a name
//	GET  /v1/graphs/{name} load a saved graph
//	DELETE /v1/graphs/{name}
//	GET  /healthz          liveness probe
//
// Responses use the same {status, message, data} envelope as the sheet
// endpoint the provider consumes, with machine-readable error codes.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/layerscope/layerscope/pkg/pipeline"
	"github.com/layerscope/layerscope/pkg/store"
)

// requestTimeout bounds one request end to end, including remote fetches.
const requestTimeout = 60 * time.Second

// Server handles HTTP requests against a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	store  store.Store // nil disables the /v1/graphs endpoints
	logger *log.Logger
}

// NewServer creates a server. The store may be nil, in which case the
// graph persistence endpoints respond 404.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/scenes", s.handleBuildScene)
		if s.store != nil {
			r.Route("/graphs", func(r chi.Router) {
				r.Get("/", s.handleListGraphs)
				r.Put("/{name}", s.handleSaveGraph)
				r.Get("/{name}", s.handleLoadGraph)
				r.Delete("/{name}", s.handleDeleteGraph)
			})
		}
	})

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: requestTimeout,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

func contextWithTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}
