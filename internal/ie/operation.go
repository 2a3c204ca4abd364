package ie

import "fmt"

// APType6GHz is the regulatory type a 6 GHz AP advertises in its
// HE Operation element.
type APType6GHz int

const (
	APType6GHzUnknown APType6GHz = iota
	APType6GHzIndoor
	APType6GHzStandardPower
)

func (t APType6GHz) String() string {
	switch t {
	case APType6GHzIndoor:
		return "indoor"
	case APType6GHzStandardPower:
		return "standard-power"
	}
	return "unknown"
}

// HTOperation carries the secondary channel offset from the HT Operation
// element. Its width and center frequency are only authoritative for
// 20/40 MHz channels; wider modes come from the VHT/HE/EHT elements.
type HTOperation struct {
	Present             bool
	SecondChannelOffset int
}

const htOperationMinLen = 22

// ParseHTOperation decodes an HT Operation element.
func ParseHTOperation(el Element) (HTOperation, error) {
	if el.ID != TagHTOperation {
		return HTOperation{}, fmt.Errorf("%w: not an HT operation element (%d)", ErrMalformedIE, el.ID)
	}
	if len(el.Data) < htOperationMinLen {
		return HTOperation{}, fmt.Errorf("%w: HT operation length %d", ErrMalformedIE, len(el.Data))
	}
	return HTOperation{
		Present:             true,
		SecondChannelOffset: int(el.Data[1]) & 0x3,
	}, nil
}

// ChannelWidth returns 40 MHz when a secondary channel offset is set,
// 20 MHz otherwise.
func (h HTOperation) ChannelWidth() ChannelWidth {
	if h.SecondChannelOffset != 0 {
		return Width40MHz
	}
	return Width20MHz
}

// CenterFreq0 returns the center frequency for a 20/40 MHz channel given
// the primary frequency, or 0 on a bogus secondary offset.
func (h HTOperation) CenterFreq0(primaryFrequency int) int {
	switch h.SecondChannelOffset {
	case 0:
		return primaryFrequency
	case 1:
		return primaryFrequency + 10
	case 3:
		return primaryFrequency - 10
	}
	return 0
}

// VHTOperation carries the channel mode and center frequency segment
// indices from the VHT Operation element.
type VHTOperation struct {
	Present          bool
	ChannelMode      int
	CenterFreqIndex1 int
	CenterFreqIndex2 int
}

const vhtOperationMinLen = 5

// ParseVHTOperation decodes a VHT Operation element.
func ParseVHTOperation(el Element) (VHTOperation, error) {
	if el.ID != TagVHTOperation {
		return VHTOperation{}, fmt.Errorf("%w: not a VHT operation element (%d)", ErrMalformedIE, el.ID)
	}
	if len(el.Data) < vhtOperationMinLen {
		return VHTOperation{}, fmt.Errorf("%w: VHT operation length %d", ErrMalformedIE, len(el.Data))
	}
	return VHTOperation{
		Present:          true,
		ChannelMode:      int(el.Data[0]),
		CenterFreqIndex1: int(el.Data[1]),
		CenterFreqIndex2: int(el.Data[2]),
	}, nil
}

// ChannelWidth returns the width for channels above 40 MHz and
// WidthUnspecified when the width must come from the HT Operation element.
func (v VHTOperation) ChannelWidth() ChannelWidth {
	switch {
	case v.ChannelMode == 0:
		return WidthUnspecified
	case v.CenterFreqIndex2 == 0:
		return Width80MHz
	case abs(v.CenterFreqIndex2-v.CenterFreqIndex1) == 8:
		return Width160MHz
	default:
		return Width80Plus80MHz
	}
}

// CenterFreq0 returns the primary segment center frequency in MHz, or 0
// when the HT Operation element is authoritative.
func (v VHTOperation) CenterFreq0() int {
	if v.CenterFreqIndex1 == 0 || v.ChannelMode == 0 {
		return 0
	}
	return ChannelToFrequency(v.CenterFreqIndex1, Band5GHz)
}

// CenterFreq1 returns the secondary segment center frequency in MHz, or 0
// when there is no secondary segment. Only meaningful for 160 and 80+80.
func (v VHTOperation) CenterFreq1() int {
	if v.CenterFreqIndex2 == 0 || v.ChannelMode == 0 {
		return 0
	}
	return ChannelToFrequency(v.CenterFreqIndex2, Band5GHz)
}

// HEOperation decodes the HE Operation element, including the optional
// nested VHT Operation info and the 6 GHz operation info block.
type HEOperation struct {
	Present           bool
	TWTRequired       bool
	VHTInfoPresent    bool
	SixGHzInfoPresent bool
	APType            APType6GHz
	PrimaryChannel    int
	CenterFreqSeg0    int
	CenterFreqSeg1    int

	vhtInfo  *Element
	sixWidth int
}

const (
	heOperationBasicLen      = 6
	heTWTRequiredMask        = 0x08
	heVHTInfoPresentMask     = 0x40
	heCoHostedBSSPresentMask = 0x80
	he6GHzInfoPresentMask    = 0x02
	he6GHzChannelWidthMask   = 0x03
	he6GHzRegInfoMask        = 0x38
	he6GHzRegInfoShift       = 3
	heVHTInfoStartIndex      = 6
)

// ParseHEOperation decodes an HE Operation element.
func ParseHEOperation(el Element) (HEOperation, error) {
	if el.ID != TagExtension || el.IDExt != TagExtHEOperation {
		return HEOperation{}, fmt.Errorf("%w: not an HE operation element", ErrMalformedIE)
	}
	if len(el.Data) < heOperationBasicLen {
		return HEOperation{}, fmt.Errorf("%w: HE operation length %d", ErrMalformedIE, len(el.Data))
	}

	op := HEOperation{
		TWTRequired:       el.Data[0]&heTWTRequiredMask != 0,
		VHTInfoPresent:    el.Data[1]&heVHTInfoPresentMask != 0,
		SixGHzInfoPresent: el.Data[2]&he6GHzInfoPresentMask != 0,
	}
	coHostedBSS := el.Data[1]&heCoHostedBSSPresentMask != 0

	expected := heOperationBasicLen
	if op.VHTInfoPresent {
		expected += 3
	}
	if coHostedBSS {
		expected++
	}
	if op.SixGHzInfoPresent {
		expected += 5
	}
	if len(el.Data) < expected {
		return HEOperation{}, fmt.Errorf("%w: HE operation length %d, want %d", ErrMalformedIE, len(el.Data), expected)
	}
	op.Present = true

	if op.VHTInfoPresent {
		data := make([]byte, vhtOperationMinLen)
		copy(data, el.Data[heVHTInfoStartIndex:heVHTInfoStartIndex+3])
		op.vhtInfo = &Element{ID: TagVHTOperation, Data: data}
	}

	if op.SixGHzInfoPresent {
		start := heVHTInfoStartIndex
		if op.VHTInfoPresent {
			start += 3
		}
		if coHostedBSS {
			start++
		}
		op.sixWidth = int(el.Data[start+1]) & he6GHzChannelWidthMask
		switch (int(el.Data[start+1]) & he6GHzRegInfoMask) >> he6GHzRegInfoShift {
		case 0:
			op.APType = APType6GHzIndoor
		case 1:
			op.APType = APType6GHzStandardPower
		}
		op.PrimaryChannel = int(el.Data[start])
		op.CenterFreqSeg0 = int(el.Data[start+2])
		op.CenterFreqSeg1 = int(el.Data[start+3])
	}
	return op, nil
}

// VHTInfoElement returns the nested VHT Operation element when the HE
// Operation element carries one, or nil.
func (h HEOperation) VHTInfoElement() *Element {
	return h.vhtInfo
}

// ChannelWidth returns the 6 GHz operating width, or WidthUnspecified when
// no 6 GHz info block is present.
func (h HEOperation) ChannelWidth() ChannelWidth {
	switch {
	case !h.SixGHzInfoPresent:
		return WidthUnspecified
	case h.sixWidth == 0:
		return Width20MHz
	case h.sixWidth == 1:
		return Width40MHz
	case h.sixWidth == 2:
		return Width80MHz
	case abs(h.CenterFreqSeg1-h.CenterFreqSeg0) == 8:
		return Width160MHz
	default:
		return Width80Plus80MHz
	}
}

// PrimaryFrequency returns the 6 GHz primary channel frequency in MHz.
func (h HEOperation) PrimaryFrequency() int {
	return ChannelToFrequency(h.PrimaryChannel, Band6GHz)
}

// CenterFreq0 returns the 6 GHz primary segment center frequency, or 0.
func (h HEOperation) CenterFreq0() int {
	if !h.SixGHzInfoPresent || h.CenterFreqSeg0 == 0 {
		return 0
	}
	return ChannelToFrequency(h.CenterFreqSeg0, Band6GHz)
}

// CenterFreq1 returns the 6 GHz secondary segment center frequency, or 0.
func (h HEOperation) CenterFreq1() int {
	if !h.SixGHzInfoPresent || h.CenterFreqSeg1 == 0 {
		return 0
	}
	return ChannelToFrequency(h.CenterFreqSeg1, Band6GHz)
}

// EHTOperation decodes the EHT Operation element.
type EHTOperation struct {
	Present                  bool
	InfoPresent              bool
	DisabledSubchannelBitmap []byte

	width          int
	CenterFreqSeg0 int
	CenterFreqSeg1 int
}

const (
	ehtOperationBasicLen          = 5
	ehtInfoPresentMask            = 0x01
	ehtDisabledSubchannelsMask    = 0x02
	ehtInfoStartIndex             = ehtOperationBasicLen
	ehtDisabledSubchannelBitmapAt = ehtInfoStartIndex + 3
)

// ParseEHTOperation decodes an EHT Operation element.
func ParseEHTOperation(el Element) (EHTOperation, error) {
	if el.ID != TagExtension || el.IDExt != TagExtEHTOperation {
		return EHTOperation{}, fmt.Errorf("%w: not an EHT operation element", ErrMalformedIE)
	}
	if len(el.Data) < ehtOperationBasicLen {
		return EHTOperation{}, fmt.Errorf("%w: EHT operation length %d", ErrMalformedIE, len(el.Data))
	}

	op := EHTOperation{
		InfoPresent: el.Data[0]&ehtInfoPresentMask != 0,
	}
	bitmapPresent := el.Data[0]&ehtDisabledSubchannelsMask != 0
	expected := ehtOperationBasicLen
	if op.InfoPresent {
		expected += 3
		if bitmapPresent {
			expected += 2
		}
	}
	if len(el.Data) < expected {
		return EHTOperation{}, fmt.Errorf("%w: EHT operation length %d, want %d", ErrMalformedIE, len(el.Data), expected)
	}
	op.Present = true

	if op.InfoPresent {
		op.width = int(el.Data[ehtInfoStartIndex]) & 0xF
		op.CenterFreqSeg0 = int(el.Data[ehtInfoStartIndex+1])
		op.CenterFreqSeg1 = int(el.Data[ehtInfoStartIndex+2])
		if bitmapPresent {
			op.DisabledSubchannelBitmap = append([]byte(nil), el.Data[ehtDisabledSubchannelBitmapAt:ehtDisabledSubchannelBitmapAt+2]...)
		}
	}
	return op, nil
}

// ChannelWidth returns the EHT BSS bandwidth, or WidthUnspecified for
// reserved encodings.
func (e EHTOperation) ChannelWidth() ChannelWidth {
	switch e.width {
	case 0:
		return Width20MHz
	case 1:
		return Width40MHz
	case 2:
		return Width80MHz
	case 3:
		return Width160MHz
	case 4:
		return Width320MHz
	}
	return WidthUnspecified
}

// CenterFreq0 returns the CCFS0 frequency on the given band. For 160 MHz
// this is the primary 80 MHz center, for 320 MHz the primary 160 MHz center.
func (e EHTOperation) CenterFreq0(band Band) int {
	if e.CenterFreqSeg0 == 0 || band == BandUnspecified {
		return FrequencyUnspecified
	}
	return ChannelToFrequency(e.CenterFreqSeg0, band)
}

// CenterFreq1 returns the CCFS1 frequency on the given band, the center of
// the full 160 or 320 MHz channel.
func (e EHTOperation) CenterFreq1(band Band) int {
	if e.CenterFreqSeg1 == 0 || band == BandUnspecified {
		return FrequencyUnspecified
	}
	return ChannelToFrequency(e.CenterFreqSeg1, band)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
