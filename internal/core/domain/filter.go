package domain

import (
	"errors"
	"strings"
	"time"
)

// Domain Errors for filtering
var (
	ErrInvalidRSSI      = errors.New("RSSI must be between -120 and 0")
	ErrInvalidTimeRange = errors.New("SeenAfter cannot be later than SeenBefore")
)

// NetworkFilter defines criteria for filtering and querying networks.
// It follows the Specification Pattern by providing a Matches method to encapsulate filtering logic.
type NetworkFilter struct {
	SSID       string    `json:"ssid"`     // Partial match (case-insensitive)
	Security   string    `json:"security"` // Substring of the capability string, e.g. "SAE"
	Mode       string    `json:"mode"`     // "b", "g", "n", "ac", "ax", "be", "" (empty = any)
	MinRSSI    int       `json:"min_rssi"` // -120 to 0
	Hidden     *bool     `json:"hidden"`   // nil = any
	HasWPS     *bool     `json:"has_wps"`  // nil = any, true = only WPS, false = no WPS
	SeenAfter  time.Time `json:"seen_after"`
	SeenBefore time.Time `json:"seen_before"`
}

// NewNetworkFilter initializes a filter with sensible defaults.
func NewNetworkFilter() *NetworkFilter {
	return &NetworkFilter{
		MinRSSI: -120, // Default to lowest detectable signal
	}
}

// --- Builder Pattern Methods ---

func (f *NetworkFilter) WithSSID(ssid string) *NetworkFilter {
	f.SSID = ssid
	return f
}

func (f *NetworkFilter) WithSecurity(s string) *NetworkFilter {
	f.Security = s
	return f
}

func (f *NetworkFilter) WithMode(m string) *NetworkFilter {
	f.Mode = m
	return f
}

func (f *NetworkFilter) WithMinRSSI(rssi int) *NetworkFilter {
	f.MinRSSI = rssi
	return f
}

// Validate ensures the filter criteria are logically valid.
func (f *NetworkFilter) Validate() error {
	if f.MinRSSI < -120 || f.MinRSSI > 0 {
		return ErrInvalidRSSI
	}
	if !f.SeenAfter.IsZero() && !f.SeenBefore.IsZero() && f.SeenAfter.After(f.SeenBefore) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Matches implements the Specification Pattern.
// It allows filtering of networks in-memory, ensuring consistency between DB queries and local logic.
func (f *NetworkFilter) Matches(n *Network) bool {
	if n == nil {
		return false
	}

	if f.SSID != "" && !strings.Contains(strings.ToLower(n.SSID), strings.ToLower(f.SSID)) {
		return false
	}

	// Security matches against the rendered capability string, e.g. "[RSN-SAE-CCMP-128][MFPR][MFPC][ESS]"
	if f.Security != "" && !strings.Contains(n.Capabilities, f.Security) {
		return false
	}

	if f.Mode != "" && !strings.EqualFold(n.Mode, f.Mode) {
		return false
	}

	if n.RSSI < f.MinRSSI {
		return false
	}

	if f.Hidden != nil && n.Hidden != *f.Hidden {
		return false
	}

	if f.HasWPS != nil && n.WPS != *f.HasWPS {
		return false
	}

	if !f.SeenAfter.IsZero() && n.LastSeen.Before(f.SeenAfter) {
		return false
	}
	if !f.SeenBefore.IsZero() && n.LastSeen.After(f.SeenBefore) {
		return false
	}

	return true
}
