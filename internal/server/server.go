// Package server roda o backend mock de ask usado no desenvolvimento local.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitormoschetta/go-askchat/internal/config"
	"github.com/vitormoschetta/go-askchat/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server representa o servidor HTTP do backend mock com suas dependências
type Server struct {
	Addr      string
	AskPath   string
	Responder *service.Responder
	Router    chi.Router
	Logger    *log.Logger
}

// NewServer cria uma nova instância do backend mock
func NewServer(cfg config.MockConfig, askPath string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if askPath == "" {
		askPath = config.DefaultPath
	}

	return &Server{
		Addr:      cfg.Addr,
		AskPath:   askPath,
		Responder: service.NewResponder(cfg.Answer, cfg.Latency),
		Logger:    logger,
	}
}

// SetupRouter configura as rotas e os middlewares do chi
func (s *Server) SetupRouter(
	handleRoot func(http.ResponseWriter, *http.Request),
	handleHealth func(http.ResponseWriter, *http.Request),
	handleAsk func(http.ResponseWriter, *http.Request),
) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  s.Logger.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	r.Post(s.AskPath, handleAsk)

	s.Router = r
}

// Start serve até ctx terminar e então faz graceful shutdown
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("mock backend listening", "addr", s.Addr, "ask", s.AskPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- errors.Wrapf(err, "listen on %s", s.Addr)
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down mock backend")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown mock backend")
	}
	if err := <-errc; err != nil {
		return err
	}

	s.Logger.Info("mock backend stopped")
	return nil
}
