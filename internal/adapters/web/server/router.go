package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/networks", s.NetworkHandler.HandleListNetworks).Methods(http.MethodGet)
	r.HandleFunc("/api/networks/{bssid}", s.NetworkHandler.HandleGetNetwork).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", s.NetworkHandler.HandleGetStats).Methods(http.MethodGet)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
