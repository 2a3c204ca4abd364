package capture

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/wparse/internal/core/domain"
	"github.com/lcalzada-xor/wparse/internal/ie"
)

// buildBeacon serializes a minimal beacon frame: 12 fixed bytes
// (timestamp, interval, capability) followed by the tagged parameters.
func buildBeacon(t *testing.T, bssid string, capability uint16, ies []byte) []byte {
	t.Helper()

	mac, err := net.ParseMAC(bssid)
	require.NoError(t, err)

	dot11 := &layers.Dot11{
		Type:     layers.Dot11TypeMgmtBeacon,
		Address1: layers.EthernetBroadcast,
		Address2: mac,
		Address3: mac,
	}

	fixed := make([]byte, 12)
	fixed[8] = 0x64 // beacon interval 100 TU
	fixed[10] = byte(capability)
	fixed[11] = byte(capability >> 8)

	payload := append(fixed, ies...)
	// Trailing FCS, stripped again by the Dot11 parser
	payload = append(payload, 0, 0, 0, 0)

	buf := gopacket.NewSerializeBuffer()
	err = gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, dot11, gopacket.Payload(payload))
	require.NoError(t, err)
	return buf.Bytes()
}

func beaconPacket(t *testing.T, bssid string, capability uint16, ies []byte) gopacket.Packet {
	t.Helper()
	data := buildBeacon(t, bssid, capability, ies)
	pkt := gopacket.NewPacket(data, layers.LayerTypeDot11, gopacket.Default)
	pkt.Metadata().CaptureInfo.CaptureLength = len(data)
	pkt.Metadata().CaptureInfo.Length = len(data)
	pkt.Metadata().CaptureInfo.Timestamp = time.Now()
	return pkt
}

// rsnPSK is a plain WPA2-PSK RSN element: CCMP group, CCMP pairwise, PSK AKM.
var rsnPSK = []byte{
	48, 20,
	0x01, 0x00,
	0x00, 0x0F, 0xAC, 0x04,
	0x01, 0x00, 0x00, 0x0F, 0xAC, 0x04,
	0x01, 0x00, 0x00, 0x0F, 0xAC, 0x02,
	0x00, 0x00,
}

func standardIEs(ssid string) []byte {
	ies := []byte{0, byte(len(ssid))}
	ies = append(ies, ssid...)
	ies = append(ies, 1, 4, 0x82, 0x84, 0x8B, 0x96) // 1, 2, 5.5, 11 Mbps
	ies = append(ies, 3, 1, 6)                      // DS parameter set, channel 6
	return ies
}

func TestHandleFrame_Beacon(t *testing.T) {
	ies := standardIEs("CoffeeShop")
	ies = append(ies, rsnPSK...)
	pkt := beaconPacket(t, "aa:bb:cc:dd:ee:ff", 0x0011, ies)

	r := NewPcapReader(nil, ie.CapabilityOptions{}, false)
	network, ok := r.handleFrame(pkt, "test.pcap")
	require.True(t, ok)

	assert.Equal(t, "aa:bb:cc:dd:ee:ff", network.BSSID)
	assert.Equal(t, "CoffeeShop", network.SSID)
	assert.False(t, network.Hidden)
	assert.Equal(t, 6, network.Channel)
	assert.Equal(t, "[WPA2-PSK-CCMP-128][RSN-PSK-CCMP-128][ESS]", network.Capabilities)
	assert.Equal(t, "test.pcap", network.Source)
	assert.Equal(t, 1, network.Beacons)
	assert.Equal(t, -100, network.RSSI) // no Radiotap header
}

func TestHandleFrame_HiddenSSIDAndWPS(t *testing.T) {
	ies := []byte{0, 0} // zero-length SSID
	ies = append(ies, 3, 1, 11)
	ies = append(ies, 221, 6, 0x00, 0x50, 0xF2, 0x04, 0x10, 0x4A)
	pkt := beaconPacket(t, "aa:bb:cc:00:00:01", 0x0001, ies)

	r := NewPcapReader(nil, ie.CapabilityOptions{}, false)
	network, ok := r.handleFrame(pkt, "test.pcap")
	require.True(t, ok)

	assert.True(t, network.Hidden)
	assert.Empty(t, network.SSID)
	assert.True(t, network.WPS)
	assert.Contains(t, network.Capabilities, "[WPS]")
}

func TestHandleFrame_IgnoresNonBeacon(t *testing.T) {
	mac, _ := net.ParseMAC("aa:bb:cc:dd:ee:ff")
	dot11 := &layers.Dot11{
		Type:     layers.Dot11TypeMgmtProbeReq,
		Address1: layers.EthernetBroadcast,
		Address2: mac,
		Address3: mac,
	}
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, dot11))
	pkt := gopacket.NewPacket(buf.Bytes(), layers.LayerTypeDot11, gopacket.Default)

	r := NewPcapReader(nil, ie.CapabilityOptions{}, false)
	_, ok := r.handleFrame(pkt, "test.pcap")
	assert.False(t, ok)
}

func writeTestPcap(t *testing.T, path string, frames ...[]byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeIEEE802_11))
	for _, frame := range frames {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Now(),
			CaptureLength: len(frame),
			Length:        len(frame),
		}
		require.NoError(t, w.WritePacket(ci, frame))
	}
}

func TestRun_ReadsCaptureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pcap")
	writeTestPcap(t, path,
		buildBeacon(t, "aa:bb:cc:00:00:01", 0x0011, append(standardIEs("NetOne"), rsnPSK...)),
		buildBeacon(t, "aa:bb:cc:00:00:02", 0x0001, standardIEs("NetTwo")),
	)

	r := NewPcapReader([]string{path}, ie.CapabilityOptions{}, false)
	out := make(chan domain.Network, 16)

	err := r.Run(context.Background(), out)
	require.NoError(t, err)
	close(out)

	var networks []domain.Network
	for n := range out {
		networks = append(networks, n)
	}
	require.Len(t, networks, 2)
	assert.Equal(t, "NetOne", networks[0].SSID)
	assert.Equal(t, "NetTwo", networks[1].SSID)
	assert.Equal(t, "[ESS]", networks[1].Capabilities)
	assert.Equal(t, "scan.pcap", networks[0].Source)
}

func TestRun_MissingFile(t *testing.T) {
	r := NewPcapReader([]string{"/does/not/exist.pcap"}, ie.CapabilityOptions{}, false)
	out := make(chan domain.Network, 1)
	err := r.Run(context.Background(), out)
	assert.Error(t, err)
}
