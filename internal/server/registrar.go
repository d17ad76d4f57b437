package server

import "github.com/gorilla/mux"

// Registrar is a common interface for all HTTP service registrars
type Registrar interface {
	Register(router *mux.Router)
}
