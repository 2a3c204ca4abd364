package storage

import (
	"strings"

	"github.com/lcalzada-xor/wparse/internal/core/domain"
)

// toDomain converts a database model to a domain entity.
func toDomain(m NetworkModel) *domain.Network {
	return &domain.Network{
		BSSID:        m.BSSID,
		SSID:         m.SSID,
		Hidden:       m.Hidden,
		Capabilities: m.Capabilities,
		Frequency:    m.Frequency,
		Channel:      m.Channel,
		ChannelWidth: m.ChannelWidth,
		CenterFreq0:  m.CenterFreq0,
		CenterFreq1:  m.CenterFreq1,
		Mode:         m.Mode,
		MaxRate:      m.MaxRate,
		Streams:      m.Streams,
		RSSI:         m.RSSI,
		Country:      m.Country,
		StationCount: m.StationCount,
		Utilization:  m.Utilization,
		WPS:          m.WPS,
		Passpoint:    m.Passpoint,
		MLDMAC:       m.MLDMAC,
		LinkCount:    m.LinkCount,
		Source:       m.Source,
		SessionID:    m.SessionID,
		Beacons:      m.Beacons,
		FirstSeen:    m.FirstSeen,
		LastSeen:     m.LastSeen,
	}
}

// toModel converts a domain entity to a database model.
func toModel(n domain.Network) NetworkModel {
	return NetworkModel{
		BSSID:        n.BSSID,
		SSID:         n.SSID,
		Hidden:       n.Hidden,
		Capabilities: n.Capabilities,
		Frequency:    n.Frequency,
		Channel:      n.Channel,
		ChannelWidth: n.ChannelWidth,
		CenterFreq0:  n.CenterFreq0,
		CenterFreq1:  n.CenterFreq1,
		Mode:         n.Mode,
		MaxRate:      n.MaxRate,
		Streams:      n.Streams,
		RSSI:         n.RSSI,
		Country:      n.Country,
		StationCount: n.StationCount,
		Utilization:  n.Utilization,
		WPS:          n.WPS,
		Passpoint:    n.Passpoint,
		MLDMAC:       n.MLDMAC,
		LinkCount:    n.LinkCount,
		Source:       n.Source,
		SessionID:    n.SessionID,
		Beacons:      n.Beacons,
		FirstSeen:    n.FirstSeen,
		LastSeen:     n.LastSeen,
	}
}

func sessionToModel(s domain.ScanSession) SessionModel {
	return SessionModel{
		ID:        s.ID,
		Sources:   strings.Join(s.Sources, ","),
		StartedAt: s.StartedAt,
		Networks:  s.Networks,
	}
}
