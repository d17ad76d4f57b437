package recommend

import (
	"github.com/gorilla/mux"
)

// Registrar ties the recommendation service into the HTTP router
type Registrar struct {
	svc *Service
}

// NewRegistrar creates a new Registrar for the recommendation service
func NewRegistrar(svc *Service) *Registrar {
	return &Registrar{svc: svc}
}

// Register attaches the recommendation routes to the router
func (r *Registrar) Register(router *mux.Router) {
	router.HandleFunc("/api/recommendations", r.svc.handleGetRecommendations).Methods("GET")
}
