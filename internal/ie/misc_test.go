package ie

import (
	"errors"
	"testing"
)

func TestParseBSSLoad(t *testing.T) {
	bl, err := ParseBSSLoad(Element{ID: TagBSSLoad, Data: []byte{0x08, 0x00, 0x80, 0x10, 0x27}})
	if err != nil {
		t.Fatalf("ParseBSSLoad: %v", err)
	}
	if bl.StationCount != 8 || bl.ChannelUtilization != 128 || bl.Capacity != 10000 {
		t.Errorf("got %+v", bl)
	}

	if _, err := ParseBSSLoad(Element{ID: TagBSSLoad, Data: []byte{0x08, 0x00}}); err == nil {
		t.Error("want error for short BSS load")
	}
}

func TestParseTrafficIndicationMap(t *testing.T) {
	tim := ParseTrafficIndicationMap(Element{ID: TagTIM, Data: []byte{0x02, 0x03, 0x00, 0x00}})
	if !tim.Valid || tim.DTIMCount != 2 || tim.DTIMPeriod != 3 {
		t.Errorf("got %+v", tim)
	}

	tim = ParseTrafficIndicationMap(Element{ID: TagTIM, Data: []byte{0x02, 0x00, 0x00, 0x00}})
	if tim.Valid {
		t.Error("zero DTIM period should be invalid")
	}

	tim = ParseTrafficIndicationMap(Element{ID: TagTIM, Data: []byte{0x02, 0x03, 0x00}})
	if tim.Valid {
		t.Error("TIM without bitmap bytes should be invalid")
	}
}

func TestParseCountry(t *testing.T) {
	c := ParseCountry(Element{ID: TagCountry, Data: []byte{'u', 's', 'I'}})
	if !c.Valid || c.Code != "US" {
		t.Errorf("got %+v", c)
	}

	c = ParseCountry(Element{ID: TagCountry, Data: []byte{'U', 'S', 'X'}})
	if c.Valid || c.Code != "00" {
		t.Errorf("bad environment letter: got %+v", c)
	}

	c = ParseCountry(Element{ID: TagCountry, Data: []byte{'U'}})
	if c.Valid {
		t.Error("short country element should be invalid")
	}
}

func TestParseSupportedRates(t *testing.T) {
	r := ParseSupportedRates(Element{ID: TagSupportedRates, Data: []byte{0x82, 0x84, 0x8B, 0x96}})
	if !r.Valid {
		t.Fatalf("got %+v", r)
	}
	if r.MaxRate() != 11000000 {
		t.Errorf("MaxRate = %d, want 11000000", r.MaxRate())
	}

	r = ParseSupportedRates(Element{ID: TagSupportedRates, Data: []byte{0x82, 0x7F}})
	if r.Valid {
		t.Error("unknown rate byte should invalidate the element")
	}

	r = ParseSupportedRates(Element{ID: TagSupportedRates, Data: make([]byte, 9)})
	if r.Valid {
		t.Error("oversized rate list should be invalid")
	}
}

func TestParseDSParameterSet(t *testing.T) {
	ch, err := ParseDSParameterSet(Element{ID: TagDSParameterSet, Data: []byte{11}})
	if err != nil || ch != 11 {
		t.Errorf("got %d, %v", ch, err)
	}
	if _, err := ParseDSParameterSet(Element{ID: TagDSParameterSet}); !errors.Is(err, ErrMalformedIE) {
		t.Errorf("err = %v, want ErrMalformedIE", err)
	}
}

func TestParseExtendedCapabilities(t *testing.T) {
	data := make([]byte, 12)
	data[6] = 0x01  // bit 48
	data[9] = 0x40  // bit 78
	data[11] = 0x0C // bits 90, 91
	ec := ParseExtendedCapabilities(Element{ID: TagExtendedCapabilities, Data: data})
	if !ec.IsStrictUTF8() {
		t.Error("strict UTF-8 bit not seen")
	}
	if ec.IsTWTRequesterSupported() || !ec.IsTWTResponderSupported() {
		t.Error("TWT bits wrong")
	}
	if !ec.IsNTBRangingResponder() || !ec.IsTBRangingResponder() {
		t.Error("ranging bits wrong")
	}
	if ec.IsFILSCapable() || ec.IsRTTResponder() {
		t.Error("unset bits read as set")
	}

	short := ParseExtendedCapabilities(Element{ID: TagExtendedCapabilities, Data: []byte{0xFF}})
	if short.IsFILSCapable() {
		t.Error("bit past the end should read false")
	}
}

func TestParseInterworking(t *testing.T) {
	iw, err := ParseInterworking(Element{ID: TagInterworking, Data: []byte{0x12}})
	if err != nil {
		t.Fatalf("ParseInterworking: %v", err)
	}
	if iw.Ant != AntChargeablePublic || !iw.Internet {
		t.Errorf("got %+v", iw)
	}

	iw, err = ParseInterworking(Element{ID: TagInterworking, Data: []byte{
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66,
	}})
	if err != nil {
		t.Fatalf("ParseInterworking with HESSID: %v", err)
	}
	if iw.HESSID != 0x112233445566 {
		t.Errorf("HESSID = %#x", iw.HESSID)
	}

	if _, err := ParseInterworking(Element{ID: TagInterworking, Data: make([]byte, 4)}); err == nil {
		t.Error("want error for illegal interworking length")
	}
}

func TestParseRoamingConsortium(t *testing.T) {
	rc, err := ParseRoamingConsortium(Element{ID: TagRoamingConsortium, Data: []byte{
		0x02, 0x63, // count 2, OI1 3 bytes, OI2 6 bytes
		0x11, 0x22, 0x33,
		0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
	}})
	if err != nil {
		t.Fatalf("ParseRoamingConsortium: %v", err)
	}
	if rc.ANQPOICount != 2 || len(rc.OIs) != 2 {
		t.Fatalf("got %+v", rc)
	}
	if rc.OIs[0] != 0x112233 || rc.OIs[1] != 0xAABBCCDDEEFF {
		t.Errorf("OIs = %#x", rc.OIs)
	}
}

func TestParseRSNXE(t *testing.T) {
	r := ParseRSNXE(Element{ID: TagRSNExtension, Data: []byte{0x02, 0x81, 0x00}})
	if !r.IsSecureHELTFSupported() {
		t.Error("secure HE-LTF bit not seen")
	}
	if !r.IsRangingFrameProtectionRequired() {
		t.Error("URNM-MFPR bit not seen")
	}

	r = ParseRSNXE(Element{ID: TagRSNExtension, Data: []byte{0x00}})
	if r.IsSecureHELTFSupported() || r.IsRangingFrameProtectionRequired() {
		t.Error("bits past the end should read false")
	}
}
