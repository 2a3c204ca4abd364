package ie

// WifiMode is the newest 802.11 PHY generation a BSS advertises.
type WifiMode int

const (
	ModeUnknown WifiMode = iota
	Mode11A
	Mode11B
	Mode11G
	Mode11N
	Mode11AC
	Mode11AX
	Mode11BE
)

// String returns the marketing-free PHY name.
func (m WifiMode) String() string {
	switch m {
	case Mode11A:
		return "a"
	case Mode11B:
		return "b"
	case Mode11G:
		return "g"
	case Mode11N:
		return "n"
	case Mode11AC:
		return "ac"
	case Mode11AX:
		return "ax"
	case Mode11BE:
		return "be"
	}
	return "?"
}

// DetermineMode derives the PHY generation from the advertised capability
// elements, falling back to band and rate heuristics for legacy networks.
func DetermineMode(frequency, maxRate int, ehtPresent, hePresent, vhtPresent, htPresent, erpPresent bool) WifiMode {
	switch {
	case ehtPresent:
		return Mode11BE
	case hePresent:
		return Mode11AX
	case vhtPresent && !Is24GHz(frequency):
		return Mode11AC
	case htPresent:
		return Mode11N
	case erpPresent:
		return Mode11G
	case Is24GHz(frequency):
		if maxRate < 24000000 {
			return Mode11B
		}
		return Mode11G
	}
	return Mode11A
}
