package domain

import "time"

// Network represents a BSS observed in a capture.
type Network struct {
	BSSID        string `json:"bssid"`
	SSID         string `json:"ssid,omitempty"`
	Hidden       bool   `json:"hidden,omitempty"`
	Capabilities string `json:"capabilities,omitempty"` // e.g. "[WPA2-PSK-CCMP-128][ESS]"
	Frequency    int    `json:"freq,omitempty"`         // e.g. 2412, 5180
	Channel      int    `json:"channel,omitempty"`
	ChannelWidth string `json:"bw,omitempty"` // "20MHz".."320MHz"
	CenterFreq0  int    `json:"cf0,omitempty"`
	CenterFreq1  int    `json:"cf1,omitempty"`
	Mode         string `json:"mode,omitempty"` // "b", "g", "n", "ac", "ax", "be"
	MaxRate      int    `json:"max_rate,omitempty"`
	Streams      int    `json:"streams,omitempty"`
	RSSI         int    `json:"rssi"`
	Country      string `json:"country,omitempty"`

	// BSS Load
	StationCount int `json:"station_count,omitempty"`
	Utilization  int `json:"utilization,omitempty"`

	// Vendor extensions
	WPS       bool   `json:"wps,omitempty"`
	Passpoint bool   `json:"passpoint,omitempty"`
	MLDMAC    string `json:"mld_mac,omitempty"` // MLD address for multi-link APs
	LinkCount int    `json:"link_count,omitempty"`

	// Capture provenance
	Source    string    `json:"source,omitempty"` // capture file the BSS was read from
	SessionID string    `json:"session_id,omitempty"`
	Beacons   int       `json:"beacons"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// ScanSession groups the networks decoded from one run over a capture set.
type ScanSession struct {
	ID        string    `json:"id"`
	Sources   []string  `json:"sources"`
	StartedAt time.Time `json:"started_at"`
	Networks  int       `json:"networks"`
}
