package ie

import (
	"fmt"
	"net"
)

// InvalidLinkID marks an MLO link id that was not advertised.
const InvalidLinkID = -1

// MloLink is one affiliated link of a multi-link device, assembled from
// the Multi-Link and Reduced Neighbor Report elements.
type MloLink struct {
	LinkID       int
	Band         Band
	Channel      int
	APMacAddress net.HardwareAddr
}

// MultiLink decodes the basic Multi-Link element
// (IEEE 802.11be 9.4.2.312): the MLD MAC address, the reporting AP's own
// link id and the Per-STA profiles of the affiliated links.
type MultiLink struct {
	Present         bool
	LinkID          int
	MLDMacAddress   net.HardwareAddr
	AffiliatedLinks []MloLink
}

const (
	mlControlFieldLen    = 2
	mlCommonInfoMinLen   = 7
	mlBasicMinLen        = mlControlFieldLen + mlCommonInfoMinLen
	mlTypeMask           = 0x07
	mlTypeBasic          = 0
	mlLinkIDPresentMask  = 0x10
	mlCommonLinkIDOffset = 7
	mlCommonLinkIDMask   = 0x0F

	mlPerStaSubElementID     = 0
	mlPerStaSubElementMinLen = 5
	mlPerStaLinkIDOffset     = 2
	mlPerStaLinkIDMask       = 0x0F
	mlPerStaStaInfoOffset    = 4
	mlPerStaMacPresentOffset = 2
	mlPerStaMacPresentMask   = 0x20
	mlPerStaStaInfoMacOffset = 1
)

// ParseMultiLink decodes a basic Multi-Link element. Non-basic types and
// malformed layouts yield an error; the element is then ignored wholesale.
func ParseMultiLink(el Element) (MultiLink, error) {
	ml := MultiLink{LinkID: InvalidLinkID}
	if el.ID != TagExtension || el.IDExt != TagExtMultiLink {
		return ml, fmt.Errorf("%w: not a multi-link element", ErrMalformedIE)
	}
	if len(el.Data) < mlControlFieldLen {
		return ml, fmt.Errorf("%w: multi-link length %d", ErrMalformedIE, len(el.Data))
	}
	// Only the basic variant is ever sent by an AP.
	if typ := int(el.Data[0]) & mlTypeMask; typ != mlTypeBasic {
		return ml, fmt.Errorf("%w: unsupported multi-link type %d", ErrMalformedIE, typ)
	}
	if len(el.Data) < mlBasicMinLen {
		return ml, fmt.Errorf("%w: multi-link length %d", ErrMalformedIE, len(el.Data))
	}

	commonInfoLength := int(el.Data[mlControlFieldLen])
	if commonInfoLength < mlCommonInfoMinLen {
		return ml, fmt.Errorf("%w: multi-link common info length %d", ErrMalformedIE, commonInfoLength)
	}
	if el.Data[0]&mlLinkIDPresentMask != 0 {
		if len(el.Data) < mlBasicMinLen+1 {
			return ml, fmt.Errorf("%w: multi-link length %d", ErrMalformedIE, len(el.Data))
		}
		ml.LinkID = int(el.Data[mlControlFieldLen+mlCommonLinkIDOffset]) & mlCommonLinkIDMask
	}
	macStart := mlControlFieldLen + 1
	ml.MLDMacAddress = net.HardwareAddr(append([]byte(nil), el.Data[macStart:macStart+6]...))

	if err := ml.parseLinkInfo(el.Data, mlControlFieldLen+commonInfoLength); err != nil {
		return MultiLink{LinkID: InvalidLinkID}, err
	}
	ml.Present = true
	return ml, nil
}

// parseLinkInfo walks the Link Info TLVs following the common info field.
// Per-STA profile sub-elements at the fragmentation threshold are
// reassembled with the Multi-Link sub-element fragment id.
func (ml *MultiLink) parseLinkInfo(data []byte, offset int) error {
	for len(data) >= offset+mlPerStaSubElementMinLen {
		subID := int(data[offset])
		subLen := int(data[offset+1])
		if len(data) < offset+subLen || subLen == 0 {
			return fmt.Errorf("%w: multi-link sub-element length %d", ErrMalformedIE, subLen)
		}
		if subID != mlPerStaSubElementID {
			offset += subLen
			continue
		}

		if subLen == fragMaxLen {
			res, ok := defragment(data, offset, mlPerStaSubElementID, tagFragmentSubElementMultiLink)
			if !ok {
				return fmt.Errorf("%w: multi-link sub-element defragmentation", ErrMalformedIE)
			}
			if err := ml.parsePerStaProfile(res.bytes, 0, len(res.bytes)); err != nil {
				return err
			}
			offset += res.read
		} else {
			if err := ml.parsePerStaProfile(data, offset, subLen); err != nil {
				return err
			}
			offset += subLen
		}
	}
	return nil
}

// parsePerStaProfile decodes one Per-STA profile sub-element, including
// its id and length header.
func (ml *MultiLink) parsePerStaProfile(data []byte, start, length int) error {
	link := MloLink{
		LinkID: int(data[start+mlPerStaLinkIDOffset]) & mlPerStaLinkIDMask,
	}
	staInfoLength := int(data[start+mlPerStaStaInfoOffset])
	if length < mlPerStaStaInfoOffset+staInfoLength {
		return fmt.Errorf("%w: multi-link sta info length %d", ErrMalformedIE, staInfoLength)
	}
	if data[start+mlPerStaMacPresentOffset]&mlPerStaMacPresentMask != 0 {
		if staInfoLength < 1+6 {
			return fmt.Errorf("%w: multi-link sta info length %d", ErrMalformedIE, staInfoLength)
		}
		macStart := start + mlPerStaStaInfoOffset + mlPerStaStaInfoMacOffset
		link.APMacAddress = net.HardwareAddr(append([]byte(nil), data[macStart:macStart+6]...))
	}
	ml.AffiliatedLinks = append(ml.AffiliatedLinks, link)
	return nil
}

// RNR decodes the Reduced Neighbor Report element
// (IEEE 802.11 9.4.2.170), keeping only the TBTT entries that carry MLD
// parameters and belong to the reporting AP's own MLD (id 0).
type RNR struct {
	Present         bool
	AffiliatedLinks []MloLink
}

const (
	rnrTBTTInfoCountMask  = 0xF0
	rnrTBTTInfoCountShift = 4
	rnrTBTTInfoSetStart   = 4
	rnrLinkIDMask         = 0x0F
)

// ParseRNR decodes a Reduced Neighbor Report element.
func ParseRNR(el Element) (RNR, error) {
	if el.ID != TagRNR {
		return RNR{}, fmt.Errorf("%w: not an RNR element (%d)", ErrMalformedIE, el.ID)
	}

	var rnr RNR
	offset := 0
	for len(el.Data) > offset+rnrTBTTInfoSetStart {
		count := (int(el.Data[offset])&rnrTBTTInfoCountMask)>>rnrTBTTInfoCountShift + 1
		infoLen := int(el.Data[offset+1])
		infoStart := offset + rnrTBTTInfoSetStart

		// Entries of length 4 carry only MLD params; 16 and above carry a
		// BSSID as well. Anything else has no MLD info to read.
		if infoLen == 4 || infoLen >= 16 {
			if len(el.Data) < offset+rnrTBTTInfoSetStart+infoLen*count {
				return RNR{}, fmt.Errorf("%w: RNR TBTT info set truncated", ErrMalformedIE)
			}
			mldStart, bssidOffset := 1, -1
			if infoLen >= 16 {
				mldStart, bssidOffset = 13, 1
			}
			opClass := int(el.Data[offset+2])
			channel := int(el.Data[offset+3])
			band := BandFromOperatingClass(opClass, channel)
			if band == BandUnspecified {
				return RNR{}, fmt.Errorf("%w: RNR operating class %d channel %d", ErrMalformedIE, opClass, channel)
			}
			for i := 0; i < count; i++ {
				if mldID := int(el.Data[infoStart+mldStart]); mldID == 0 {
					link := MloLink{
						LinkID:  int(el.Data[infoStart+mldStart+1]) & rnrLinkIDMask,
						Band:    band,
						Channel: channel,
					}
					if bssidOffset != -1 {
						macStart := infoStart + bssidOffset
						link.APMacAddress = net.HardwareAddr(append([]byte(nil), el.Data[macStart:macStart+6]...))
					}
					rnr.AffiliatedLinks = append(rnr.AffiliatedLinks, link)
				}
				infoStart += infoLen
			}
		}
		offset += rnrTBTTInfoSetStart + count*infoLen
	}
	rnr.Present = true
	return rnr, nil
}
