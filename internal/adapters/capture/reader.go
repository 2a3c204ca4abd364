package capture

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/lcalzada-xor/wparse/internal/core/domain"
	"github.com/lcalzada-xor/wparse/internal/ie"
	"github.com/lcalzada-xor/wparse/internal/telemetry"
)

// PcapReader decodes beacon and probe response frames from capture files
// into networks. It implements ports.Capture.
type PcapReader struct {
	paths   []string
	options ie.CapabilityOptions
	debug   bool
}

// NewPcapReader creates a reader over the given capture files.
func NewPcapReader(paths []string, options ie.CapabilityOptions, debug bool) *PcapReader {
	return &PcapReader{
		paths:   paths,
		options: options,
		debug:   debug,
	}
}

// Sources returns the capture files this reader consumes.
func (r *PcapReader) Sources() []string {
	return r.paths
}

// Run reads every configured file in order, emitting one network per
// decoded frame. Aggregation across frames is the caller's job.
func (r *PcapReader) Run(ctx context.Context, out chan<- domain.Network) error {
	for _, path := range r.paths {
		if err := r.readFile(ctx, path, out); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return nil
}

func (r *PcapReader) readFile(ctx context.Context, path string, out chan<- domain.Network) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader, err := pcapgo.NewReader(f)
	if err != nil {
		return err
	}

	source := filepath.Base(path)
	packetSource := gopacket.NewPacketSource(reader, reader.LinkType())
	for packet := range packetSource.Packets() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		network, ok := r.handleFrame(packet, source)
		if !ok {
			continue
		}

		select {
		case out <- *network:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// handleFrame extracts the tagged parameters of a beacon or probe response
// and folds them into a network record.
func (r *PcapReader) handleFrame(packet gopacket.Packet, source string) (*domain.Network, bool) {
	dot11Layer := packet.Layer(layers.LayerTypeDot11)
	if dot11Layer == nil {
		return nil, false
	}
	dot11, ok := dot11Layer.(*layers.Dot11)
	if !ok {
		return nil, false
	}

	var ieData []byte
	var capability uint16

	// Check Frame Type based on Dot11 header first (safer than checking for layer existence)
	switch dot11.Type {
	case layers.Dot11TypeMgmtBeacon:
		if beacon, ok := packet.Layer(layers.LayerTypeDot11MgmtBeacon).(*layers.Dot11MgmtBeacon); ok {
			ieData = beacon.LayerPayload()
			capability = beacon.Flags
		}
	case layers.Dot11TypeMgmtProbeResp:
		// Probe responses carry the same tagged parameters as beacons
		if resp, ok := packet.Layer(layers.LayerTypeDot11MgmtProbeResp).(*layers.Dot11MgmtProbeResp); ok {
			ieData = resp.LayerPayload()
			capability = resp.Flags
		}
	default:
		return nil, false
	}

	telemetry.FramesProcessed.WithLabelValues(source).Inc()

	if len(ieData) == 0 {
		telemetry.DecodeFailures.WithLabelValues("empty_payload").Inc()
		return nil, false
	}

	rssi, freq := extractRadioInfo(packet)

	elements := ie.ParseElements(ieData)
	if len(elements) == 0 {
		telemetry.DecodeFailures.WithLabelValues("no_elements").Inc()
		return nil, false
	}
	for _, el := range elements {
		telemetry.ElementsDecoded.WithLabelValues(strconv.Itoa(el.ID)).Inc()
	}

	opts := r.options
	opts.Frequency = freq
	info := ie.DecodeBSS(elements, int(capability), freq, opts)

	seen := packet.Metadata().Timestamp
	if seen.IsZero() {
		seen = time.Now()
	}

	network := toNetwork(info, dot11, rssi, source, seen)
	if r.debug {
		log.Printf("DEBUG capture: BSSID=%s SSID=%q caps=%s", network.BSSID, network.SSID, network.Capabilities)
	}
	return network, true
}

// extractRadioInfo pulls RSSI and channel frequency from the Radiotap
// header when the capture carries one.
func extractRadioInfo(packet gopacket.Packet) (rssi, freq int) {
	rssi = -100
	if radiotapLayer := packet.Layer(layers.LayerTypeRadioTap); radiotapLayer != nil {
		if radiotap, ok := radiotapLayer.(*layers.RadioTap); ok {
			rssi = int(radiotap.DBMAntennaSignal)
			freq = int(radiotap.ChannelFrequency)
		}
	}
	return
}

func toNetwork(info ie.BSSInfo, dot11 *layers.Dot11, rssi int, source string, seen time.Time) *domain.Network {
	n := &domain.Network{
		BSSID:        dot11.Address3.String(),
		SSID:         info.SSID.Value,
		Hidden:       info.SSID.Hidden,
		Capabilities: info.Capabilities.String(),
		Frequency:    info.Frequency,
		Channel:      info.Channel,
		ChannelWidth: info.ChannelWidth.String(),
		CenterFreq0:  info.CenterFreq0,
		CenterFreq1:  info.CenterFreq1,
		Mode:         info.Mode.String(),
		MaxRate:      info.MaxRate,
		Streams:      info.Streams,
		RSSI:         rssi,
		WPS:          info.Capabilities.IsWPS,
		Passpoint:    info.Vendor.IsHS20,
		Source:       source,
		Beacons:      1,
		FirstSeen:    seen,
		LastSeen:     seen,
	}
	if info.Country.Valid {
		n.Country = info.Country.Code
	}
	if info.BSSLoad.Present {
		n.StationCount = info.BSSLoad.StationCount
		n.Utilization = info.BSSLoad.ChannelUtilization
	}
	if info.MultiLink.Present {
		n.MLDMAC = info.MultiLink.MLDMacAddress.String()
		n.LinkCount = len(info.MultiLink.AffiliatedLinks)
	}
	return n
}
