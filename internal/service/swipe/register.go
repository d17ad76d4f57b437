package swipe

import (
	"github.com/gorilla/mux"
)

// Registrar ties the swipe service into the HTTP router
type Registrar struct {
	svc *Service
}

// NewRegistrar creates a new Registrar for the swipe service
func NewRegistrar(svc *Service) *Registrar {
	return &Registrar{svc: svc}
}

// Register attaches the swipe, likes, and matches routes to the router
func (r *Registrar) Register(router *mux.Router) {
	router.HandleFunc("/api/swipes", r.svc.handlePostSwipe).Methods("POST")
	router.HandleFunc("/api/likes/received", r.svc.handleGetLikers).Methods("GET")
	router.HandleFunc("/api/likes/received/count", r.svc.handleGetLikerCount).Methods("GET")
	router.HandleFunc("/api/matches", r.svc.handleGetMatches).Methods("GET")
}
