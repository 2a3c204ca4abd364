package ie

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wi-Fi Alliance vendor-specific type bytes.
const (
	wfaOUITypeHS20 = 0x10
	wfaOUITypeMBO  = 0x16
)

var wfaOUI = []byte{0x50, 0x6F, 0x9A}

// Hotspot 2.0 releases advertised in the HS2.0 indication element.
const (
	HS2ReleaseUnknown = 0
	HS2Release1       = 1
	HS2Release2       = 2
	HS2Release3       = 3
)

// MBO-OCE attribute identifiers and masks.
const (
	mboAttrAPCapability          = 0x01
	mboAttrAssociationDisallowed = 0x04
	mboAttrOCEAPCapability       = 0x65
	mboAPCapCellDataAware        = 0x40
)

// MBOAttributeNotPresent marks an MBO attribute that was not advertised.
const MBOAttributeNotPresent = -1

// VendorSpecific aggregates what the engine extracts from the
// vendor-specific elements of one frame: Passpoint indication, MBO/OCE
// capability attributes, and raw OUI payloads for fingerprinting.
type VendorSpecific struct {
	// Hotspot 2.0 indication.
	IsHS20            bool
	HS2Release        int
	IsAnqpDomainIDSet bool
	AnqpDomainID      int

	// MBO-OCE.
	IsMBOSupported                 bool
	IsMBOCellularDataAware         bool
	IsOCESupported                 bool
	MBOAssociationDisallowedReason int
}

// ParseVendorSpecific folds one vendor-specific element into v. Elements
// from OUIs the engine does not understand are ignored.
func (v *VendorSpecific) ParseVendorSpecific(el Element) error {
	if el.ID != TagVendorSpecific {
		return fmt.Errorf("%w: not a vendor specific element (%d)", ErrMalformedIE, el.ID)
	}
	if len(el.Data) < 4 || !bytes.Equal(el.Data[0:3], wfaOUI) {
		return nil
	}
	switch el.Data[3] {
	case wfaOUITypeHS20:
		v.parseHS20(el.Data)
	case wfaOUITypeMBO:
		v.parseMBOOCE(el.Data)
	}
	return nil
}

func (v *VendorSpecific) parseHS20(data []byte) {
	if len(data) < 5 {
		return
	}
	v.IsHS20 = true
	hsConf := data[4]
	switch (hsConf >> 4) & 0x0F {
	case 0:
		v.HS2Release = HS2Release1
	case 1:
		v.HS2Release = HS2Release2
	case 2:
		v.HS2Release = HS2Release3
	default:
		v.HS2Release = HS2ReleaseUnknown
	}
	if hsConf&0x04 == 0 {
		return
	}
	expected := 7
	if hsConf&0x02 != 0 {
		expected += 2
	}
	if len(data) < expected {
		return
	}
	v.IsAnqpDomainIDSet = true
	v.AnqpDomainID = int(binary.LittleEndian.Uint16(data[expected-2 : expected]))
}

func (v *VendorSpecific) parseMBOOCE(data []byte) {
	if v.MBOAssociationDisallowedReason == 0 {
		v.MBOAssociationDisallowedReason = MBOAttributeNotPresent
	}
	data = data[4:]
	for len(data) >= 2 {
		attrID := data[0]
		attrLen := int(data[1])
		if attrLen == 0 || attrLen > len(data)-2 {
			break
		}
		attr := data[2 : 2+attrLen]
		switch attrID {
		case mboAttrAPCapability:
			v.IsMBOSupported = true
			v.IsMBOCellularDataAware = attr[0]&mboAPCapCellDataAware != 0
		case mboAttrAssociationDisallowed:
			v.MBOAssociationDisallowedReason = int(attr[0])
		case mboAttrOCEAPCapability:
			v.IsOCESupported = true
		}
		data = data[2+attrLen:]
	}
}

// ParseVendorElements decodes every vendor-specific element in elements.
func ParseVendorElements(elements []Element) VendorSpecific {
	v := VendorSpecific{MBOAssociationDisallowedReason: MBOAttributeNotPresent}
	for _, el := range elements {
		if el.ID == TagVendorSpecific {
			v.ParseVendorSpecific(el)
		}
	}
	return v
}
