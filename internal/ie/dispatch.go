package ie

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownElement reports an element id no registered decoder handles.
var ErrUnknownElement = errors.New("unknown information element")

// Decoder turns one element into its decoded form.
type Decoder func(Element) (any, error)

type decoderKey struct {
	id    int
	idExt int
}

var (
	decoderMu sync.RWMutex
	decoders  = map[decoderKey]Decoder{}
)

// RegisterDecoder installs fn for the given element id. idExt is only
// consulted for extension elements; pass -1 otherwise. Registering over an
// existing id replaces the previous decoder.
func RegisterDecoder(id, idExt int, fn Decoder) {
	decoderMu.Lock()
	defer decoderMu.Unlock()
	decoders[decoderKey{id, idExt}] = fn
}

// DecodeElement runs the registered decoder for el.
func DecodeElement(el Element) (any, error) {
	key := decoderKey{el.ID, -1}
	if el.ID == TagExtension {
		key.idExt = el.IDExt
	}
	decoderMu.RLock()
	fn, ok := decoders[key]
	decoderMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d ext %d", ErrUnknownElement, el.ID, el.IDExt)
	}
	return fn(el)
}

func init() {
	RegisterDecoder(TagSSID, -1, func(el Element) (any, error) {
		return ParseSSID(el), nil
	})
	RegisterDecoder(TagSupportedRates, -1, func(el Element) (any, error) {
		return ParseSupportedRates(el), nil
	})
	RegisterDecoder(TagExtendedSupportedRates, -1, func(el Element) (any, error) {
		return ParseSupportedRates(el), nil
	})
	RegisterDecoder(TagDSParameterSet, -1, func(el Element) (any, error) {
		return ParseDSParameterSet(el)
	})
	RegisterDecoder(TagTIM, -1, func(el Element) (any, error) {
		return ParseTrafficIndicationMap(el), nil
	})
	RegisterDecoder(TagCountry, -1, func(el Element) (any, error) {
		return ParseCountry(el), nil
	})
	RegisterDecoder(TagBSSLoad, -1, func(el Element) (any, error) {
		return ParseBSSLoad(el)
	})
	RegisterDecoder(TagHTCapabilities, -1, func(el Element) (any, error) {
		return ParseHTCapabilities(el)
	})
	RegisterDecoder(TagHTOperation, -1, func(el Element) (any, error) {
		return ParseHTOperation(el)
	})
	RegisterDecoder(TagInterworking, -1, func(el Element) (any, error) {
		return ParseInterworking(el)
	})
	RegisterDecoder(TagRoamingConsortium, -1, func(el Element) (any, error) {
		return ParseRoamingConsortium(el)
	})
	RegisterDecoder(TagExtendedCapabilities, -1, func(el Element) (any, error) {
		return ParseExtendedCapabilities(el), nil
	})
	RegisterDecoder(TagVHTCapabilities, -1, func(el Element) (any, error) {
		return ParseVHTCapabilities(el)
	})
	RegisterDecoder(TagVHTOperation, -1, func(el Element) (any, error) {
		return ParseVHTOperation(el)
	})
	RegisterDecoder(TagRNR, -1, func(el Element) (any, error) {
		return ParseRNR(el)
	})
	RegisterDecoder(TagVendorSpecific, -1, func(el Element) (any, error) {
		var v VendorSpecific
		if err := v.ParseVendorSpecific(el); err != nil {
			return nil, err
		}
		return v, nil
	})
	RegisterDecoder(TagRSNExtension, -1, func(el Element) (any, error) {
		return ParseRSNXE(el), nil
	})
	RegisterDecoder(TagExtension, TagExtHECapabilities, func(el Element) (any, error) {
		return ParseHECapabilities(el)
	})
	RegisterDecoder(TagExtension, TagExtHEOperation, func(el Element) (any, error) {
		return ParseHEOperation(el)
	})
	RegisterDecoder(TagExtension, TagExtEHTOperation, func(el Element) (any, error) {
		return ParseEHTOperation(el)
	})
	RegisterDecoder(TagExtension, TagExtMultiLink, func(el Element) (any, error) {
		return ParseMultiLink(el)
	})
	RegisterDecoder(TagExtension, TagExtEHTCapabilities, func(el Element) (any, error) {
		return ParseEHTCapabilities(el)
	})
}
