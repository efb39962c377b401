package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mfallon/exertrack/internal/exercises"
	"github.com/mfallon/exertrack/internal/users"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(cfg *Config, userHandler *users.Handler, exerciseHandler *exercises.Handler) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: cfg.CORSOrigins,
		AllowedHeaders: []string{"*"},
	})

	userHandler.RegisterRoutes(mux)
	exerciseHandler.RegisterRoutes(mux)

	// Add health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Wrap with CORS
	handler := c.Handler(mux)

	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      h2c.NewHandler(handler, &http2.Server{}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
