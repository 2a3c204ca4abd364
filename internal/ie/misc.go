package ie

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// BSSLoad is the QBSS load element: station count, channel utilization
// (0-255 scale) and remaining admission capacity.
type BSSLoad struct {
	Present            bool
	StationCount       int
	ChannelUtilization int
	Capacity           int
}

// MaxChannelUtilization is the full-scale value of the utilization field.
const MaxChannelUtilization = 255

// ParseBSSLoad decodes a BSS Load element.
func ParseBSSLoad(el Element) (BSSLoad, error) {
	if el.ID != TagBSSLoad {
		return BSSLoad{}, fmt.Errorf("%w: not a BSS load element (%d)", ErrMalformedIE, el.ID)
	}
	if len(el.Data) != 5 {
		return BSSLoad{}, fmt.Errorf("%w: BSS load length %d", ErrMalformedIE, len(el.Data))
	}
	return BSSLoad{
		Present:            true,
		StationCount:       int(binary.LittleEndian.Uint16(el.Data[0:2])),
		ChannelUtilization: int(el.Data[2]),
		Capacity:           int(binary.LittleEndian.Uint16(el.Data[3:5])),
	}, nil
}

// ParseDSParameterSet returns the current channel from a DS Parameter Set
// element.
func ParseDSParameterSet(el Element) (int, error) {
	if el.ID != TagDSParameterSet || len(el.Data) < 1 {
		return 0, fmt.Errorf("%w: DS parameter set", ErrMalformedIE)
	}
	return int(el.Data[0]), nil
}

// TrafficIndicationMap is the TIM element, present in beacons only.
type TrafficIndicationMap struct {
	Valid         bool
	Length        int
	DTIMCount     int
	DTIMPeriod    int
	BitmapControl int
}

const maxTIMLength = 254

// ParseTrafficIndicationMap decodes a TIM element. A TIM needs a DTIM
// period above zero and at least one partial virtual bitmap byte to be
// considered valid.
func ParseTrafficIndicationMap(el Element) TrafficIndicationMap {
	tim := TrafficIndicationMap{Length: len(el.Data), DTIMCount: -1, DTIMPeriod: -1}
	if el.ID != TagTIM || len(el.Data) < 4 {
		return tim
	}
	tim.DTIMCount = int(el.Data[0])
	tim.DTIMPeriod = int(el.Data[1])
	tim.BitmapControl = int(el.Data[2])
	tim.Valid = tim.Length <= maxTIMLength && tim.DTIMPeriod > 0
	return tim
}

// Country is the country element's two-letter code.
type Country struct {
	Valid bool
	Code  string
}

// ParseCountry decodes a Country element. The third letter of the country
// string is an environment marker: all, outdoor or indoor.
func ParseCountry(el Element) Country {
	if el.ID != TagCountry || len(el.Data) < 3 {
		return Country{Code: "00"}
	}
	l1, l2, l3 := el.Data[0], el.Data[1], el.Data[2]
	if (l3 != ' ' && l3 != 'O' && l3 != 'I') || !isAlnum(l1) || !isAlnum(l2) {
		return Country{Code: "00"}
	}
	return Country{Valid: true, Code: strings.ToUpper(string([]byte{l1, l2}))}
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// SupportedRates holds the decoded rates of a Supported Rates or Extended
// Supported Rates element, in bits per second.
type SupportedRates struct {
	Valid bool
	Rates []int
}

// RateFromByte converts one rate byte (low 7 bits, units of 500 kbit/s for
// the classic rate set) to bits per second, or -1 for an unknown encoding.
func RateFromByte(b byte) int {
	switch b & 0x7F {
	case 2:
		return 1000000
	case 4:
		return 2000000
	case 11:
		return 5500000
	case 12:
		return 6000000
	case 18:
		return 9000000
	case 22:
		return 11000000
	case 24:
		return 12000000
	case 36:
		return 18000000
	case 44:
		return 22000000
	case 48:
		return 24000000
	case 66:
		return 33000000
	case 72:
		return 36000000
	case 96:
		return 48000000
	case 108:
		return 54000000
	}
	return -1
}

// ParseSupportedRates decodes a (Extended) Supported Rates element. Any
// unknown rate byte invalidates the whole element.
func ParseSupportedRates(el Element) SupportedRates {
	if len(el.Data) < 1 || len(el.Data) > 8 {
		return SupportedRates{}
	}
	rates := make([]int, 0, len(el.Data))
	for _, b := range el.Data {
		rate := RateFromByte(b)
		if rate <= 0 {
			return SupportedRates{Rates: rates}
		}
		rates = append(rates, rate)
	}
	return SupportedRates{Valid: true, Rates: rates}
}

// MaxRate returns the highest decoded rate in bits per second, or 0.
func (s SupportedRates) MaxRate() int {
	max := 0
	for _, r := range s.Rates {
		if r > max {
			max = r
		}
	}
	return max
}

// ExtendedCapabilities is the extended capabilities bit field. Bits past
// the end of a short element read as false.
type ExtendedCapabilities struct {
	Present bool
	bits    []byte
}

// Extended capabilities bit positions.
const (
	extCapStrictUTF8SSID      = 48
	extCapRTTResponder        = 70
	extCapFILS                = 72
	extCapTWTRequester        = 77
	extCapTWTResponder        = 78
	extCapNTBRangingResponder = 90
	extCapTBRangingResponder  = 91
)

// ParseExtendedCapabilities decodes an Extended Capabilities element.
func ParseExtendedCapabilities(el Element) ExtendedCapabilities {
	if el.ID != TagExtendedCapabilities {
		return ExtendedCapabilities{}
	}
	return ExtendedCapabilities{Present: true, bits: append([]byte(nil), el.Data...)}
}

// IsStrictUTF8 reports whether the SSID should be interpreted as UTF-8.
func (e ExtendedCapabilities) IsStrictUTF8() bool { return bitSet(e.bits, extCapStrictUTF8SSID) }

// IsRTTResponder reports 802.11mc RTT responder support.
func (e ExtendedCapabilities) IsRTTResponder() bool { return bitSet(e.bits, extCapRTTResponder) }

// IsFILSCapable reports Fast Initial Link Setup support.
func (e ExtendedCapabilities) IsFILSCapable() bool { return bitSet(e.bits, extCapFILS) }

// IsTWTRequesterSupported reports TWT requester support.
func (e ExtendedCapabilities) IsTWTRequesterSupported() bool {
	return bitSet(e.bits, extCapTWTRequester)
}

// IsTWTResponderSupported reports TWT responder support.
func (e ExtendedCapabilities) IsTWTResponderSupported() bool {
	return bitSet(e.bits, extCapTWTResponder)
}

// IsNTBRangingResponder reports non-trigger-based ranging responder
// support (802.11az).
func (e ExtendedCapabilities) IsNTBRangingResponder() bool {
	return bitSet(e.bits, extCapNTBRangingResponder)
}

// IsTBRangingResponder reports trigger-based ranging responder support
// (802.11az).
func (e ExtendedCapabilities) IsTBRangingResponder() bool {
	return bitSet(e.bits, extCapTBRangingResponder)
}

// Ant is the Interworking access network type.
type Ant int

const (
	AntPrivate Ant = iota
	AntPrivateWithGuest
	AntChargeablePublic
	AntFreePublic
	AntPersonal
	AntEmergencyOnly
	AntResvd6
	AntResvd7
	AntResvd8
	AntResvd9
	AntResvd10
	AntResvd11
	AntResvd12
	AntResvd13
	AntTestOrExperimental
	AntWildcard
)

// Interworking is the Hotspot 2.0 Interworking element.
type Interworking struct {
	Present  bool
	Ant      Ant
	Internet bool
	HESSID   uint64
}

// ParseInterworking decodes an Interworking element. Only four layouts are
// legal: options alone, with venue info, with HESSID, or with both.
func ParseInterworking(el Element) (Interworking, error) {
	if el.ID != TagInterworking {
		return Interworking{}, fmt.Errorf("%w: not an interworking element (%d)", ErrMalformedIE, el.ID)
	}
	n := len(el.Data)
	if n != 1 && n != 3 && n != 7 && n != 9 {
		return Interworking{}, fmt.Errorf("%w: interworking length %d", ErrMalformedIE, n)
	}
	iw := Interworking{
		Present:  true,
		Ant:      Ant(el.Data[0] & 0x0F),
		Internet: el.Data[0]&0x10 != 0,
	}
	if n == 7 || n == 9 {
		off := n - 6
		for _, b := range el.Data[off : off+6] {
			iw.HESSID = iw.HESSID<<8 | uint64(b)
		}
	}
	return iw, nil
}

// RoamingConsortium is the Roaming Consortium element: the ANQP OI count
// and up to three organization identifiers, big-endian.
type RoamingConsortium struct {
	Present     bool
	ANQPOICount int
	OIs         []uint64
}

// ParseRoamingConsortium decodes a Roaming Consortium element.
func ParseRoamingConsortium(el Element) (RoamingConsortium, error) {
	if el.ID != TagRoamingConsortium {
		return RoamingConsortium{}, fmt.Errorf("%w: not a roaming consortium element (%d)", ErrMalformedIE, el.ID)
	}
	if len(el.Data) < 2 {
		return RoamingConsortium{}, fmt.Errorf("%w: roaming consortium length %d", ErrMalformedIE, len(el.Data))
	}
	rc := RoamingConsortium{Present: true, ANQPOICount: int(el.Data[0])}
	oi1Len := int(el.Data[1]) & 0x0F
	oi2Len := int(el.Data[1]) >> 4 & 0x0F
	oi3Len := len(el.Data) - 2 - oi1Len - oi2Len

	off := 2
	readOI := func(n int) (uint64, error) {
		if off+n > len(el.Data) {
			return 0, fmt.Errorf("%w: roaming consortium OI truncated", ErrMalformedIE)
		}
		var v uint64
		for _, b := range el.Data[off : off+n] {
			v = v<<8 | uint64(b)
		}
		off += n
		return v, nil
	}
	for _, n := range []int{oi1Len, oi2Len, oi3Len} {
		if n <= 0 {
			break
		}
		oi, err := readOI(n)
		if err != nil {
			return rc, err
		}
		rc.OIs = append(rc.OIs, oi)
	}
	return rc, nil
}

// RSNXE is the RSN Extension element's bit field.
type RSNXE struct {
	Present bool
	bits    []byte
}

const (
	rsnxeSecureHELTFBit = 8
	rsnxeURNMMFPRBit    = 15
)

// ParseRSNXE decodes an RSN Extension element.
func ParseRSNXE(el Element) RSNXE {
	if el.ID != TagRSNExtension {
		return RSNXE{}
	}
	return RSNXE{Present: true, bits: append([]byte(nil), el.Data...)}
}

// IsSecureHELTFSupported reports support for cryptographically randomized
// HE-LTF sequences in ranging measurements.
func (r RSNXE) IsSecureHELTFSupported() bool { return bitSet(r.bits, rsnxeSecureHELTFBit) }

// IsRangingFrameProtectionRequired reports the URNM-MFPR policy bit.
func (r RSNXE) IsRangingFrameProtectionRequired() bool { return bitSet(r.bits, rsnxeURNMMFPRBit) }
