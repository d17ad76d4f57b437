package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campusmatch/engine/internal/config"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// StartHTTPServer boots the HTTP server and registers all provided services
func StartHTTPServer(cfg *config.Config, registrars ...Registrar) error {
	router := mux.NewRouter()

	// health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// prometheus metrics
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// register all services
	for _, r := range registrars {
		r.Register(router)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	return http.ListenAndServe(addr, corsHandler)
}
