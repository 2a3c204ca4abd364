// Package ie decodes 802.11 management frame information elements: it
// tokenizes the raw tagged-parameter stream (including fragmented elements),
// exposes typed decoders for the elements a scanner cares about, resolves
// channels to frequencies and widths, and renders the capability string for
// a BSS from its security elements.
package ie

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// Element tags.
const (
	TagSSID                   = 0
	TagSupportedRates         = 1
	TagDSParameterSet         = 3
	TagTIM                    = 5
	TagCountry                = 7
	TagBSSLoad                = 11
	TagERP                    = 42
	TagHTCapabilities         = 45
	TagRSN                    = 48
	TagExtendedSupportedRates = 50
	TagHTOperation            = 61
	TagInterworking           = 107
	TagRoamingConsortium      = 111
	TagExtendedCapabilities   = 127
	TagVHTCapabilities        = 191
	TagVHTOperation           = 192
	TagRNR                    = 201
	TagVendorSpecific         = 221
	TagFragment               = 242
	TagRSNExtension           = 244
	TagExtension              = 255
)

// Extension tags (second ID byte of a TagExtension element).
const (
	TagExtHECapabilities  = 35
	TagExtHEOperation     = 36
	TagExtEHTOperation    = 106
	TagExtMultiLink       = 107
	TagExtEHTCapabilities = 108
)

// Sub-element fragment ID inside a Multi-Link link info block.
const tagFragmentSubElementMultiLink = 254

// fragMaxLen is the body size that forces an element onto fragments.
const fragMaxLen = 255

// Element is a single tokenized information element. IDExt is only
// meaningful when ID is TagExtension; for every other element it is zero.
// For extension elements Data excludes the extension tag byte, and for
// fragmented Multi-Link elements Data is the reassembled body.
type Element struct {
	ID    int
	IDExt int
	Data  []byte
}

// Errors
var (
	ErrMalformedIE = errors.New("malformed information element")
	ErrIENotFound  = errors.New("information element not found")
)

// Encode re-emits the element in wire form. Reassembled elements come back
// as a single oversized element rather than their original fragments.
func (e Element) Encode() []byte {
	out := make([]byte, 0, len(e.Data)+3)
	out = append(out, byte(e.ID))
	if e.ID == TagExtension {
		out = append(out, byte(len(e.Data)+1), byte(e.IDExt))
	} else {
		out = append(out, byte(len(e.Data)))
	}
	return append(out, e.Data...)
}

// HexString renders the element header and body as lowercase hex, with the
// extension tag (when present) between the ID and the length.
func (e Element) HexString() string {
	if e.ID == TagExtension {
		return fmt.Sprintf("%02x%02x%02x%s", e.ID, e.IDExt, len(e.Data), hex.EncodeToString(e.Data))
	}
	return fmt.Sprintf("%02x%02x%s", e.ID, len(e.Data), hex.EncodeToString(e.Data))
}

func isFragmentable(eid, eidExt int) bool {
	return eid == TagExtension && eidExt == TagExtMultiLink
}

// defragResult is the output of reassembling one fragmented element run.
type defragResult struct {
	// bytes holds a synthetic [eid, 255] header followed by the
	// concatenated fragment bodies.
	bytes []byte
	// read counts how much of the input the run consumed.
	read int
}

// defragment reassembles a fragment run starting at buf[start]. The first
// element must carry the given eid; continuation fragments carry fragID.
// Per IEEE 802.11-2020 §10.28.11 a fragment chain continues while each
// fragment body is exactly 255 bytes and the next tag is the fragment ID.
func defragment(buf []byte, start, eid, fragID int) (defragResult, bool) {
	if start >= len(buf) || int(buf[start]) != eid {
		return defragResult{}, false
	}
	out := []byte{byte(eid), fragMaxLen}
	pos := start + 1
	for {
		if pos >= len(buf) {
			return defragResult{}, false
		}
		fragLen := int(buf[pos])
		pos++
		if pos+fragLen > len(buf) {
			return defragResult{}, false
		}
		out = append(out, buf[pos:pos+fragLen]...)
		pos += fragLen
		if fragLen != fragMaxLen || pos >= len(buf) || int(buf[pos]) != fragID {
			break
		}
		pos++
	}
	return defragResult{bytes: out, read: pos - start}, true
}

// ParseElements tokenizes a tagged-parameter buffer into elements.
//
// The walk is deliberately tolerant of real-world beacons: it stops without
// error when a declared length overruns the buffer, when a second SSID
// element shows up (APs pad frames with bytes that look like SSID markers),
// or when an extension marker arrives with no extension tag. Everything
// parsed up to that point is kept. Fragmented Multi-Link elements are
// reassembled in place.
func ParseElements(buf []byte) []Element {
	if buf == nil {
		return []Element{}
	}
	elements := []Element{}
	foundSSID := false
	pos := 0
	for len(buf)-pos > 1 {
		start := pos
		eid := int(buf[pos])
		eidExt := 0
		elementLength := int(buf[pos+1])
		pos += 2
		var defrag *defragResult

		if elementLength > len(buf)-pos || (eid == TagSSID && foundSSID) {
			break
		}
		if eid == TagSSID {
			foundSSID = true
		} else if eid == TagExtension {
			if elementLength == 0 {
				break
			}
			eidExt = int(buf[pos])
			pos++
			if isFragmentable(eid, eidExt) && elementLength == fragMaxLen {
				if res, ok := defragment(buf, start, eid, TagFragment); ok {
					defrag = &res
				} else {
					break
				}
			}
			elementLength--
		}

		el := Element{ID: eid, IDExt: eidExt}
		if defrag != nil {
			// Skip eid, len and the extension tag, all handled above.
			el.Data = append([]byte(nil), defrag.bytes[3:]...)
			pos = start + defrag.read
		} else {
			el.Data = append([]byte(nil), buf[pos:pos+elementLength]...)
			pos += elementLength
		}
		elements = append(elements, el)
	}
	return elements
}

// ParseElementsHex tokenizes a hex-encoded tagged-parameter buffer.
func ParseElementsHex(s string) ([]Element, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIE, err)
	}
	return ParseElements(raw), nil
}

// FindElement returns the first element with the given tag, or ErrIENotFound.
func FindElement(elements []Element, id int) (Element, error) {
	for _, el := range elements {
		if el.ID == id {
			return el, nil
		}
	}
	return Element{}, ErrIENotFound
}

// FindExtElement returns the first extension element with the given
// extension tag, or ErrIENotFound.
func FindExtElement(elements []Element, idExt int) (Element, error) {
	for _, el := range elements {
		if el.ID == TagExtension && el.IDExt == idExt {
			return el, nil
		}
	}
	return Element{}, ErrIENotFound
}
