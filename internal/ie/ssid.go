package ie

import (
	"encoding/hex"
	"unicode/utf8"
)

// SSID is the decoded network name. Raw keeps the exact bytes for names
// that are not valid UTF-8, which still occur in the field.
type SSID struct {
	Value  string
	Raw    []byte
	Hidden bool
}

// ParseSSID decodes an SSID element. A zero-length or all-zero SSID is a
// hidden network (some devices pad the hidden SSID with zero bytes instead
// of omitting it).
func ParseSSID(el Element) SSID {
	if el.ID != TagSSID {
		return SSID{Hidden: true}
	}
	if len(el.Data) == 0 || el.Data[0] == 0x00 {
		allZero := true
		for _, b := range el.Data {
			if b != 0x00 {
				allZero = false
				break
			}
		}
		if allZero {
			return SSID{Hidden: true}
		}
	}
	s := SSID{Raw: append([]byte(nil), el.Data...)}
	if utf8.Valid(el.Data) {
		s.Value = string(el.Data)
	}
	return s
}

// String returns the UTF-8 name, or the hex form for names that are not
// valid UTF-8.
func (s SSID) String() string {
	if s.Hidden {
		return ""
	}
	if s.Value != "" || len(s.Raw) == 0 {
		return s.Value
	}
	return hex.EncodeToString(s.Raw)
}
