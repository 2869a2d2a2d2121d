package delivery_http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	auth_http "inkpost-service/internal/delivery/http/auth"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/delivery/http/middleware"
	post_http "inkpost-service/internal/delivery/http/post"
	"inkpost-service/internal/logger"
	"inkpost-service/internal/metrics"
	"inkpost-service/internal/ratelimit"
)

type Server struct {
	server *http.Server
	log    *logger.Logger
}

func NewServer(
	authAPI *auth_http.AuthHTTPService,
	postAPI *post_http.PostHTTPService,
	verifier middleware.TokenVerifier,
	limiter *ratelimit.Limiter,
	metrics metrics.Provider,
	address string,
	port int,
	log *logger.Logger,
) *Server {
	mux := http.NewServeMux()

	requireAuth := middleware.Auth(verifier)
	rateLimited := middleware.RateLimit(limiter, metrics)

	mux.HandleFunc("POST /register", authAPI.Register)
	mux.HandleFunc("POST /token", authAPI.Login)

	mux.Handle("GET /posts", rateLimited(http.HandlerFunc(postAPI.ListPosts)))
	mux.HandleFunc("GET /search/posts", postAPI.SearchPosts)

	mux.Handle("POST /posts", requireAuth(http.HandlerFunc(postAPI.CreatePost)))
	mux.Handle("GET /user/posts", requireAuth(http.HandlerFunc(postAPI.UserPosts)))
	mux.Handle("DELETE /posts/{id}", requireAuth(http.HandlerFunc(postAPI.DeletePost)))
	mux.Handle("POST /user/media", requireAuth(http.HandlerFunc(postAPI.UploadMedia)))
	mux.Handle("DELETE /user/media", requireAuth(http.HandlerFunc(postAPI.DeleteMedia)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpjson.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", address, port),
			Handler:           middleware.Logging(log, metrics)(mux),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
