package ie

// BSSInfo is the decoded view of one BSS, folded from every information
// element of a beacon or probe response.
type BSSInfo struct {
	SSID         SSID
	Channel      int
	Frequency    int
	ChannelWidth ChannelWidth
	CenterFreq0  int
	CenterFreq1  int
	Mode         WifiMode
	MaxRate      int
	Streams      int

	Capabilities Capabilities
	Country      Country
	BSSLoad      BSSLoad
	TIM          TrafficIndicationMap
	ExtendedCaps ExtendedCapabilities
	Interworking Interworking
	Roaming      RoamingConsortium
	RSNXE        RSNXE
	Vendor       VendorSpecific
	MultiLink    MultiLink
	RNR          RNR

	HTOperation  HTOperation
	VHTOperation VHTOperation
	HEOperation  HEOperation
	EHTOperation EHTOperation

	HTCapabilities  HTCapabilities
	VHTCapabilities VHTCapabilities
	HECapabilities  HECapabilities
	EHTCapabilities EHTCapabilities
}

// DecodeBSS decodes elements into a BSSInfo. beaconCap is the capability
// field of the management frame header and frequency the channel the frame
// was received on; both feed the capability string and width resolution.
func DecodeBSS(elements []Element, beaconCap, frequency int, opts CapabilityOptions) BSSInfo {
	info := BSSInfo{Frequency: frequency, ChannelWidth: Width20MHz}
	erpPresent := false

	for _, el := range elements {
		switch el.ID {
		case TagSSID:
			info.SSID = ParseSSID(el)
		case TagSupportedRates, TagExtendedSupportedRates:
			if r := ParseSupportedRates(el); r.Valid && r.MaxRate() > info.MaxRate {
				info.MaxRate = r.MaxRate()
			}
		case TagDSParameterSet:
			if ch, err := ParseDSParameterSet(el); err == nil {
				info.Channel = ch
			}
		case TagTIM:
			info.TIM = ParseTrafficIndicationMap(el)
		case TagCountry:
			info.Country = ParseCountry(el)
		case TagBSSLoad:
			if bl, err := ParseBSSLoad(el); err == nil {
				info.BSSLoad = bl
			}
		case TagERP:
			erpPresent = true
		case TagHTCapabilities:
			info.HTCapabilities, _ = ParseHTCapabilities(el)
		case TagHTOperation:
			if op, err := ParseHTOperation(el); err == nil {
				info.HTOperation = op
			}
		case TagInterworking:
			if iw, err := ParseInterworking(el); err == nil {
				info.Interworking = iw
			}
		case TagRoamingConsortium:
			if rc, err := ParseRoamingConsortium(el); err == nil {
				info.Roaming = rc
			}
		case TagExtendedCapabilities:
			info.ExtendedCaps = ParseExtendedCapabilities(el)
		case TagVHTCapabilities:
			info.VHTCapabilities, _ = ParseVHTCapabilities(el)
		case TagVHTOperation:
			if op, err := ParseVHTOperation(el); err == nil {
				info.VHTOperation = op
			}
		case TagRNR:
			if rnr, err := ParseRNR(el); err == nil {
				info.RNR = rnr
			}
		case TagRSNExtension:
			info.RSNXE = ParseRSNXE(el)
		case TagExtension:
			switch el.IDExt {
			case TagExtHECapabilities:
				info.HECapabilities, _ = ParseHECapabilities(el)
			case TagExtHEOperation:
				if op, err := ParseHEOperation(el); err == nil {
					info.HEOperation = op
				}
			case TagExtEHTOperation:
				if op, err := ParseEHTOperation(el); err == nil {
					info.EHTOperation = op
				}
			case TagExtEHTCapabilities:
				info.EHTCapabilities, _ = ParseEHTCapabilities(el)
			case TagExtMultiLink:
				if ml, err := ParseMultiLink(el); err == nil {
					info.MultiLink = ml
				}
			}
		}
	}

	info.Vendor = ParseVendorElements(elements)
	info.Capabilities = ParseCapabilities(elements, beaconCap, opts)
	info.resolveChannel()
	info.Streams = maxStreams(info)
	info.Mode = DetermineMode(info.Frequency, info.MaxRate,
		info.EHTCapabilities.Present, info.HECapabilities.Present,
		info.VHTCapabilities.Present, info.HTCapabilities.Present, erpPresent)
	return info
}

// resolveChannel picks the operating width and center frequencies from the
// newest operation element that carries them: EHT, then the HE 6 GHz info
// block, then VHT (possibly nested inside HE), then HT.
func (info *BSSInfo) resolveChannel() {
	if info.HEOperation.SixGHzInfoPresent {
		info.Frequency = info.HEOperation.PrimaryFrequency()
		info.Channel = info.HEOperation.PrimaryChannel
	}
	band := BandFromFrequency(info.Frequency)
	if info.Channel == 0 {
		// No DS Parameter Set (typical above 2.4 GHz); fall back to the
		// receive frequency.
		info.Channel = FrequencyToChannel(info.Frequency)
	}

	if info.EHTOperation.Present && info.EHTOperation.InfoPresent {
		info.ChannelWidth = info.EHTOperation.ChannelWidth()
		info.CenterFreq0 = clampFreq(info.EHTOperation.CenterFreq0(band))
		info.CenterFreq1 = clampFreq(info.EHTOperation.CenterFreq1(band))
		return
	}
	if info.HEOperation.SixGHzInfoPresent {
		info.ChannelWidth = info.HEOperation.ChannelWidth()
		info.CenterFreq0 = info.HEOperation.CenterFreq0()
		info.CenterFreq1 = info.HEOperation.CenterFreq1()
		return
	}
	vht := info.VHTOperation
	if !vht.Present && info.HEOperation.VHTInfoPresent {
		if nested := info.HEOperation.VHTInfoElement(); nested != nil {
			if op, err := ParseVHTOperation(*nested); err == nil {
				vht = op
			}
		}
	}
	if vht.Present && vht.ChannelWidth() != WidthUnspecified {
		info.ChannelWidth = vht.ChannelWidth()
		info.CenterFreq0 = vht.CenterFreq0()
		info.CenterFreq1 = vht.CenterFreq1()
		return
	}
	if info.HTOperation.Present {
		info.ChannelWidth = info.HTOperation.ChannelWidth()
		info.CenterFreq0 = info.HTOperation.CenterFreq0(info.Frequency)
	}
}

func clampFreq(f int) int {
	if f == FrequencyUnspecified {
		return 0
	}
	return f
}

func maxStreams(info BSSInfo) int {
	streams := 1
	for _, s := range []int{
		info.HTCapabilities.MaxSpatialStreams,
		info.VHTCapabilities.MaxSpatialStreams,
		info.HECapabilities.MaxSpatialStreams,
	} {
		if s > streams {
			streams = s
		}
	}
	return streams
}
