package storage

import (
	"testing"
	"time"

	"github.com/lcalzada-xor/wparse/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestConverter_RoundTrip(t *testing.T) {
	now := time.Now()
	n := domain.Network{
		BSSID:        "aa:bb:cc:dd:ee:ff",
		SSID:         "RoundTrip",
		Hidden:       false,
		Capabilities: "[WPA2-PSK-CCMP-128][RSN-PSK-CCMP-128][ESS]",
		Frequency:    2437,
		Channel:      6,
		ChannelWidth: "40MHz",
		Mode:         "n",
		MaxRate:      300000000,
		Streams:      2,
		RSSI:         -55,
		Country:      "DE",
		StationCount: 7,
		Utilization:  128,
		WPS:          true,
		Passpoint:    true,
		Source:       "office.pcap",
		SessionID:    "s-1",
		Beacons:      42,
		FirstSeen:    now.Add(-time.Hour),
		LastSeen:     now,
	}

	back := toDomain(toModel(n))
	assert.Equal(t, n, *back)
}

func TestConverter_Session(t *testing.T) {
	s := domain.ScanSession{
		ID:       "s-2",
		Sources:  []string{"one.pcap", "two.pcap"},
		Networks: 3,
	}
	m := sessionToModel(s)
	assert.Equal(t, "one.pcap,two.pcap", m.Sources)
	assert.Equal(t, 3, m.Networks)
}
