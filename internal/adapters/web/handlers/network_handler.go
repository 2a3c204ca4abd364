package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/lcalzada-xor/wparse/internal/core/domain"
	"github.com/lcalzada-xor/wparse/internal/core/ports"
)

// NetworkHandler serves decoded networks and aggregate stats.
type NetworkHandler struct {
	Store ports.Storage
}

// NewNetworkHandler creates a new NetworkHandler
func NewNetworkHandler(store ports.Storage) *NetworkHandler {
	return &NetworkHandler{
		Store: store,
	}
}

// HandleListNetworks returns networks matching the query parameters.
func (h *NetworkHandler) HandleListNetworks(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, "Invalid filter: "+err.Error(), http.StatusBadRequest)
		return
	}

	networks, err := h.Store.GetNetworksByFilter(*filter)
	if err != nil {
		log.Printf("Network query failed: %v", err)
		http.Error(w, "Query failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count":    len(networks),
		"networks": networks,
	})
}

// HandleGetNetwork returns a single network by BSSID.
func (h *NetworkHandler) HandleGetNetwork(w http.ResponseWriter, r *http.Request) {
	bssid := mux.Vars(r)["bssid"]

	network, err := h.Store.GetNetwork(bssid)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Network not found", http.StatusNotFound)
			return
		}
		log.Printf("Network lookup failed: %v", err)
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(network)
}

// HandleGetStats returns aggregate counts over all stored networks.
func (h *NetworkHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	networks, err := h.Store.GetAllNetworks()
	if err != nil {
		log.Printf("Stats query failed: %v", err)
		http.Error(w, "Query failed", http.StatusInternalServerError)
		return
	}

	byMode := make(map[string]int)
	byWidth := make(map[string]int)
	hidden := 0
	wps := 0
	for _, n := range networks {
		if n.Mode != "" {
			byMode[n.Mode]++
		}
		if n.ChannelWidth != "" {
			byWidth[n.ChannelWidth]++
		}
		if n.Hidden {
			hidden++
		}
		if n.WPS {
			wps++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total":    len(networks),
		"hidden":   hidden,
		"wps":      wps,
		"by_mode":  byMode,
		"by_width": byWidth,
	})
}

func filterFromQuery(r *http.Request) (*domain.NetworkFilter, error) {
	q := r.URL.Query()
	filter := domain.NewNetworkFilter()
	filter.SSID = q.Get("ssid")
	filter.Security = q.Get("security")
	filter.Mode = q.Get("mode")

	if v := q.Get("min_rssi"); v != "" {
		rssi, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		filter.MinRSSI = rssi
	}
	if v := q.Get("hidden"); v != "" {
		hidden, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		filter.Hidden = &hidden
	}
	if v := q.Get("wps"); v != "" {
		wps, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		filter.HasWPS = &wps
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return filter, nil
}
