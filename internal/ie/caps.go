package ie

import "fmt"

// bitSet reports bit n of a little-endian packed bit field, false when the
// field is too short to hold it.
func bitSet(b []byte, n int) bool {
	if n/8 >= len(b) {
		return false
	}
	return b[n/8]&(1<<(n%8)) != 0
}

// maxSpatialStreamsFromMCSMap walks a VHT/HE style Rx MCS map from the
// highest stream down; 3 in a two-bit slot means the stream count is not
// supported.
func maxSpatialStreamsFromMCSMap(mcsMap int) int {
	for i := 8; i >= 1; i-- {
		if (mcsMap>>((i-1)*2))&0x3 != 3 {
			return i
		}
	}
	return 1
}

// HTCapabilities reports the max spatial streams from the HT Rx MCS set.
type HTCapabilities struct {
	Present           bool
	MaxSpatialStreams int
}

// ParseHTCapabilities decodes an HT Capabilities element. A short element
// yields a non-present result with one spatial stream, mirroring how
// scanners degrade on truncated beacons.
func ParseHTCapabilities(el Element) (HTCapabilities, error) {
	if el.ID != TagHTCapabilities {
		return HTCapabilities{MaxSpatialStreams: 1}, fmt.Errorf("%w: not an HT capabilities element (%d)", ErrMalformedIE, el.ID)
	}
	if len(el.Data) < 26 {
		return HTCapabilities{MaxSpatialStreams: 1}, nil
	}
	streams := 1
	switch {
	case el.Data[6] > 0:
		streams = 4
	case el.Data[5] > 0:
		streams = 3
	case el.Data[4] > 0:
		streams = 2
	}
	return HTCapabilities{Present: true, MaxSpatialStreams: streams}, nil
}

// VHTCapabilities reports the max spatial streams from the VHT Rx MCS map.
type VHTCapabilities struct {
	Present           bool
	MaxSpatialStreams int
}

// ParseVHTCapabilities decodes a VHT Capabilities element.
func ParseVHTCapabilities(el Element) (VHTCapabilities, error) {
	if el.ID != TagVHTCapabilities {
		return VHTCapabilities{MaxSpatialStreams: 1}, fmt.Errorf("%w: not a VHT capabilities element (%d)", ErrMalformedIE, el.ID)
	}
	if len(el.Data) < 12 {
		return VHTCapabilities{MaxSpatialStreams: 1}, nil
	}
	mcsMap := int(el.Data[5])<<8 | int(el.Data[4])
	return VHTCapabilities{
		Present:           true,
		MaxSpatialStreams: maxSpatialStreamsFromMCSMap(mcsMap),
	}, nil
}

// HECapabilities reports spatial streams and TWT support bits from the
// HE Capabilities element.
type HECapabilities struct {
	Present               bool
	MaxSpatialStreams     int
	TWTRequesterSupported bool
	TWTResponderSupported bool
	BroadcastTWTSupported bool
}

// HE MAC capabilities information bits (IEEE 802.11ax 9.4.2.248.2).
const (
	heTWTRequesterSupportBit = 1
	heTWTResponderSupportBit = 2
	heBroadcastTWTSupportBit = 20
)

// ParseHECapabilities decodes an HE Capabilities element.
func ParseHECapabilities(el Element) (HECapabilities, error) {
	if el.ID != TagExtension || el.IDExt != TagExtHECapabilities {
		return HECapabilities{MaxSpatialStreams: 1}, fmt.Errorf("%w: not an HE capabilities element", ErrMalformedIE)
	}
	if len(el.Data) < 21 {
		return HECapabilities{MaxSpatialStreams: 1}, nil
	}
	mcsMap := int(el.Data[18])<<8 | int(el.Data[17])
	mac := el.Data[0:5]
	return HECapabilities{
		Present:               true,
		MaxSpatialStreams:     maxSpatialStreamsFromMCSMap(mcsMap),
		TWTRequesterSupported: bitSet(mac, heTWTRequesterSupportBit),
		TWTResponderSupported: bitSet(mac, heTWTResponderSupportBit),
		BroadcastTWTSupported: bitSet(mac, heBroadcastTWTSupportBit),
	}, nil
}

// EHTCapabilities reports EHT MAC capability bits
// (IEEE 802.11be 9.4.2.313.2).
type EHTCapabilities struct {
	Present                     bool
	EPCSPriorityAccessSupported bool
	RestrictedTWTSupported      bool
}

const (
	ehtEPCSPriorityAccessBit = 0
	ehtRestrictedTWTBit      = 4
)

// ParseEHTCapabilities decodes an EHT Capabilities element. Only the first
// MAC capabilities byte is inspected.
func ParseEHTCapabilities(el Element) (EHTCapabilities, error) {
	if el.ID != TagExtension || el.IDExt != TagExtEHTCapabilities {
		return EHTCapabilities{}, fmt.Errorf("%w: not an EHT capabilities element", ErrMalformedIE)
	}
	mac := el.Data
	if len(mac) > 1 {
		mac = mac[:1]
	}
	return EHTCapabilities{
		Present:                     true,
		EPCSPriorityAccessSupported: bitSet(mac, ehtEPCSPriorityAccessBit),
		RestrictedTWTSupported:      bitSet(mac, ehtRestrictedTWTBit),
	}, nil
}
