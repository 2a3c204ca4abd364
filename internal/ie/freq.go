package ie

// Band identifies the radio band a channel belongs to.
type Band int

const (
	BandUnspecified Band = iota
	Band24GHz
	Band5GHz
	Band6GHz
	Band60GHz
)

func (b Band) String() string {
	switch b {
	case Band24GHz:
		return "2.4GHz"
	case Band5GHz:
		return "5GHz"
	case Band6GHz:
		return "6GHz"
	case Band60GHz:
		return "60GHz"
	}
	return "unspecified"
}

// ChannelWidth is the operating width of a BSS channel.
type ChannelWidth int

const (
	WidthUnspecified ChannelWidth = iota - 1
	Width20MHz
	Width40MHz
	Width80MHz
	Width160MHz
	Width80Plus80MHz
	Width320MHz
)

func (w ChannelWidth) String() string {
	switch w {
	case Width20MHz:
		return "20MHz"
	case Width40MHz:
		return "40MHz"
	case Width80MHz:
		return "80MHz"
	case Width160MHz:
		return "160MHz"
	case Width80Plus80MHz:
		return "80+80MHz"
	case Width320MHz:
		return "320MHz"
	}
	return "unspecified"
}

// FrequencyUnspecified marks a channel that cannot be resolved to MHz.
const FrequencyUnspecified = -1

// ChannelToFrequency converts a channel number on the given band to its
// center frequency in MHz, or FrequencyUnspecified when the channel does
// not exist on that band.
func ChannelToFrequency(channel int, band Band) int {
	switch band {
	case Band24GHz:
		if channel == 14 {
			return 2484
		}
		if channel >= 1 && channel <= 13 {
			return 2407 + channel*5
		}
	case Band5GHz:
		if channel >= 182 && channel <= 196 {
			return 4000 + channel*5
		}
		if channel >= 32 && channel <= 177 {
			return 5000 + channel*5
		}
	case Band6GHz:
		// Channel 2 is the out-of-sequence 5935 MHz channel.
		if channel == 2 {
			return 5935
		}
		if channel >= 1 && channel <= 253 {
			return 5950 + channel*5
		}
	case Band60GHz:
		if channel >= 1 && channel <= 6 {
			return 56160 + channel*2160
		}
	}
	return FrequencyUnspecified
}

// FrequencyToChannel converts a center frequency in MHz back to its channel
// number, or 0 when the frequency does not map to a known channel. The
// ranges mirror ChannelToFrequency.
func FrequencyToChannel(freq int) int {
	switch {
	case freq == 2484:
		return 14
	case freq >= 2412 && freq <= 2472:
		return (freq - 2407) / 5
	case freq >= 4910 && freq <= 4980:
		return (freq - 4000) / 5
	case freq >= 5160 && freq <= 5885:
		return (freq - 5000) / 5
	case freq == 5935:
		return 2
	case freq >= 5955 && freq <= 7215:
		return (freq - 5950) / 5
	case freq >= 58320 && freq <= 69120:
		return (freq - 56160) / 2160
	}
	return 0
}

// BandFromOperatingClass maps a global operating class and channel to a
// band, validating that the channel exists in that class.
func BandFromOperatingClass(opClass, channel int) Band {
	switch {
	case opClass >= 81 && opClass <= 84:
		if channel >= 1 && channel <= 14 {
			return Band24GHz
		}
	case opClass >= 115 && opClass <= 130:
		if channel >= 32 && channel <= 177 {
			return Band5GHz
		}
	case opClass >= 131 && opClass <= 137:
		if channel >= 1 && channel <= 253 {
			return Band6GHz
		}
	case opClass == 180:
		if channel >= 1 && channel <= 6 {
			return Band60GHz
		}
	}
	return BandUnspecified
}

// Frequency range helpers, all in MHz.

func Is24GHz(freq int) bool { return freq >= 2412 && freq <= 2484 }

func Is5GHz(freq int) bool { return freq >= 5160 && freq <= 5885 }

func Is6GHz(freq int) bool {
	return (freq >= 5945 && freq <= 7105) || freq == 5935
}

// Is60GHz reports whether the frequency falls on the DMG side of the
// 45 GHz split, where the capability field encodes ESS/IBSS differently.
func Is60GHz(freq int) bool { return freq >= 45000 }

// BandFromFrequency resolves a frequency in MHz to its band.
func BandFromFrequency(freq int) Band {
	switch {
	case Is24GHz(freq):
		return Band24GHz
	case Is5GHz(freq):
		return Band5GHz
	case Is6GHz(freq):
		return Band6GHz
	case Is60GHz(freq):
		return Band60GHz
	}
	return BandUnspecified
}
