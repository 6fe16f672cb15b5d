package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashil31/Admin-Panel/config"
	"github.com/ashil31/Admin-Panel/db"
	"github.com/ashil31/Admin-Panel/mailingservices"
	"github.com/ashil31/Admin-Panel/services"
	"github.com/ashil31/Admin-Panel/ws"
)

type Server struct {
	Config           *config.Config
	Mail             *mailingservices.Mailgun
	AdminRepository  db.AdminRepository
	UserRepository   db.UserRepository
	RewardRepository db.RewardRepository
	AuthService      services.AuthService
	UserService      services.UserService
	RewardService    services.RewardService
	ExportService    services.ExportService
	MediaService     services.MediaService
	Hub              *ws.Hub
}

// Start serves HTTP until SIGINT/SIGTERM, then drains in-flight
// requests. Open websocket connections are closed with the listener.
func (s *Server) Start() {
	port := s.Config.Port
	if port == 0 {
		port = 5000
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.setupRouter(),
	}

	go func() {
		log.Printf("Server running on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
