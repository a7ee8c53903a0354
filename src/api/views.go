package api

import (
	"net/http"
	"time"

	handlers "dashboard/src/api/handlers"
	"dashboard/src/config"
	"dashboard/src/utils"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
}

func NewServer(cfg *config.Config) (*Server, error) {
	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Logger.Level), cfg.Logger.LogToFile, cfg.Logger.FilePath)
	handler, err := handlers.NewHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Get("/dashboard", s.Handler.GetDashboardPage)

	s.Router.Route("/api", func(r chi.Router) {
		r.Get("/indicators", s.Handler.GetAllIndicators)
		r.Get("/countries", s.Handler.GetAllCountries)
		r.Get("/dashboard", s.Handler.GetDashboard)
		r.Get("/dashboard/export", s.Handler.GetDashboardFile)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
