package ie

import (
	"encoding/binary"
	"strings"
)

// Protocol identifies the security protocol a group of suites belongs to.
type Protocol int

const (
	ProtocolNone Protocol = iota
	ProtocolWPA
	ProtocolRSN
)

func (p Protocol) String() string {
	switch p {
	case ProtocolNone:
		return "None"
	case ProtocolWPA:
		return "WPA"
	case ProtocolRSN:
		return "RSN"
	}
	return "?"
}

// KeyMgmt is a decoded AKM suite.
type KeyMgmt int

const (
	KeyMgmtUnknown KeyMgmt = iota
	KeyMgmtNone
	KeyMgmtPSK
	KeyMgmtEAP
	KeyMgmtFTEAP
	KeyMgmtFTPSK
	KeyMgmtEAPSHA256
	KeyMgmtPSKSHA256
	KeyMgmtOWE
	KeyMgmtOWETransition
	KeyMgmtSAE
	KeyMgmtFTSAE
	KeyMgmtSAEExtKey
	KeyMgmtFTSAEExtKey
	KeyMgmtEAPSuiteB192
	KeyMgmtOSEN
	KeyMgmtFILSSHA256
	KeyMgmtFILSSHA384
	KeyMgmtDPP
	KeyMgmtFTPSKSHA384
	KeyMgmtEAPFTSHA384
	KeyMgmtPASN
)

// String renders the suite the way wpa_supplicant spells it in a scan
// result capability string.
func (k KeyMgmt) String() string {
	switch k {
	case KeyMgmtNone:
		return "None"
	case KeyMgmtPSK:
		return "PSK"
	case KeyMgmtEAP:
		return "EAP/SHA1"
	case KeyMgmtFTEAP:
		return "FT/EAP"
	case KeyMgmtFTPSK:
		return "FT/PSK"
	case KeyMgmtEAPSHA256:
		return "EAP/SHA256"
	case KeyMgmtPSKSHA256:
		return "PSK-SHA256"
	case KeyMgmtOWE:
		return "OWE"
	case KeyMgmtOWETransition:
		return "OWE_TRANSITION"
	case KeyMgmtSAE:
		return "SAE"
	case KeyMgmtFTSAE:
		return "FT/SAE"
	case KeyMgmtSAEExtKey:
		return "SAE_EXT_KEY"
	case KeyMgmtFTSAEExtKey:
		return "FT/SAE_EXT_KEY"
	case KeyMgmtEAPSuiteB192:
		return "EAP_SUITE_B_192"
	case KeyMgmtOSEN:
		return "OSEN"
	case KeyMgmtFILSSHA256:
		return "EAP-FILS-SHA256"
	case KeyMgmtFILSSHA384:
		return "EAP-FILS-SHA384"
	case KeyMgmtDPP:
		return "DPP"
	case KeyMgmtFTPSKSHA384:
		return "FT/PSK-SHA384"
	case KeyMgmtEAPFTSHA384:
		return "EAP-FT-SHA384"
	case KeyMgmtPASN:
		return "PASN"
	}
	return "?"
}

// Cipher is a decoded pairwise or group cipher suite.
type Cipher int

const (
	CipherNone Cipher = iota
	CipherTKIP
	CipherCCMP128
	CipherCCMP256
	CipherGCMP128
	CipherGCMP256
	CipherNoGroupAddressed
	CipherBIPGMAC128
	CipherBIPGMAC256
	CipherBIPCMAC256
)

func (c Cipher) String() string {
	switch c {
	case CipherNone:
		return "None"
	case CipherCCMP128:
		return "CCMP-128"
	case CipherCCMP256:
		return "CCMP-256"
	case CipherGCMP128:
		return "GCMP-128"
	case CipherGCMP256:
		return "GCMP-256"
	case CipherTKIP:
		return "TKIP"
	}
	return "?"
}

// Suite selectors, read little-endian so the suite type lands in the high
// byte: 00:0F:AC:xx for RSN-domain suites, 00:50:F2:xx for WPA-domain.
const (
	wpaVendorOUITypeOne       = 0x01f25000
	wpsVendorOUIType          = 0x04f25000
	oweVendorOUIType          = 0x1c9a6f50
	rsnOverrideVendorOUIType  = 0x299a6f50
	rsnOverride2VendorOUIType = 0x2a9a6f50

	wpaVendorOUIVersion = 0x0001
	rsneVersion         = 0x0001

	wpaAKMEAP = 0x01f25000
	wpaAKMPSK = 0x02f25000

	rsnAKMEAP          = 0x01ac0f00
	rsnAKMPSK          = 0x02ac0f00
	rsnAKMFTEAP        = 0x03ac0f00
	rsnAKMFTPSK        = 0x04ac0f00
	rsnAKMEAPSHA256    = 0x05ac0f00
	rsnAKMPSKSHA256    = 0x06ac0f00
	rsnAKMSAE          = 0x08ac0f00
	rsnAKMFTSAE        = 0x09ac0f00
	rsnAKMEAPSuiteB192 = 0x0cac0f00
	rsnAKMEAPFTSHA384  = 0x0dac0f00
	rsnAKMFILSSHA256   = 0x0eac0f00
	rsnAKMFILSSHA384   = 0x0fac0f00
	rsnAKMFTPSKSHA384  = 0x13ac0f00
	rsnAKMPASN         = 0x15ac0f00
	rsnAKMSAEExtKey    = 0x18ac0f00
	rsnAKMFTSAEExtKey  = 0x19ac0f00
	rsnOSEN            = 0x019a6f50
	rsnAKMDPP          = 0x029a6f50
	rsnAKMOWE          = 0x12ac0f00

	wpaCipherNone = 0x00f25000
	wpaCipherTKIP = 0x02f25000
	wpaCipherCCMP = 0x04f25000

	rsnCipherNone             = 0x00ac0f00
	rsnCipherTKIP             = 0x02ac0f00
	rsnCipherCCMP             = 0x04ac0f00
	rsnCipherNoGroupAddressed = 0x07ac0f00
	rsnCipherGCMP128          = 0x08ac0f00
	rsnCipherGCMP256          = 0x09ac0f00
	rsnCipherCCMP256          = 0x0aac0f00
	rsnCipherBIPGMAC128       = 0x0bac0f00
	rsnCipherBIPGMAC256       = 0x0cac0f00
	rsnCipherBIPCMAC256       = 0x0dac0f00
)

// RSN capability bits.
const (
	rsnCapMFPRequired = 1 << 6
	rsnCapMFPCapable  = 1 << 7
)

// Beacon capability field bits. In DMG beacons bits 0 and 1 form a BSS
// type code instead of independent ESS/IBSS flags.
const (
	capESS     = 1 << 0
	capIBSS    = 1 << 1
	capPrivacy = 1 << 4
	capDMGESS  = 0x3
	capDMGIBSS = 0x1
)

// SecurityGroup is one protocol's worth of decoded suites: the AKM and
// pairwise cipher lists of a WPA, RSN or RSN-override element.
type SecurityGroup struct {
	Protocol              Protocol
	AKMs                  []KeyMgmt
	PairwiseCiphers       []Cipher
	GroupCipher           Cipher
	GroupManagementCipher Cipher
}

// CapabilityOptions are the caller-supplied knobs affecting capability
// decoding. UnknownAKMs remaps raw suite selectors the static tables do
// not know to a suite that renders with a proper name instead of "?".
type CapabilityOptions struct {
	OWESupported           bool
	RSNOverridingSupported bool
	Frequency              int
	UnknownAKMs            map[uint32]KeyMgmt
}

// Capabilities is the decoded security posture of a BSS, built from its
// beacon capability field and security elements. Render it with String to
// get the wpa_supplicant style capability line.
type Capabilities struct {
	IsESS              bool
	IsIBSS             bool
	IsPrivacy          bool
	IsWPS              bool
	MFPRequired        bool
	MFPCapable         bool
	RSNOverridePresent bool

	wpaGroups      []SecurityGroup
	rsnGroups      []SecurityGroup
	overrideGroups []SecurityGroup
	oweGroups      []SecurityGroup
}

// suiteReader is a little-endian cursor over a suite list body. Reads past
// the end report failure instead of panicking; malformed elements are
// normal input here.
type suiteReader struct {
	data []byte
	off  int
}

func (r *suiteReader) u16() (int, bool) {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0, false
	}
	v := int(binary.LittleEndian.Uint16(r.data[r.off:]))
	r.off += 2
	return v, true
}

func (r *suiteReader) u32() (uint32, bool) {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0, false
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, true
}

func (r *suiteReader) skip(n int) bool {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return false
	}
	r.off += n
	return true
}

func (r *suiteReader) remaining() int { return len(r.data) - r.off }

// ParseCapabilities decodes the security posture of a BSS from its element
// list and 16-bit beacon capability field. The frequency decides how the
// ESS/IBSS bits are read (DMG beacons encode them differently).
func ParseCapabilities(elements []Element, beaconCap int, opts CapabilityOptions) Capabilities {
	var c Capabilities
	c.IsPrivacy = beaconCap&capPrivacy != 0
	if Is60GHz(opts.Frequency) {
		if beaconCap&capDMGESS == capDMGESS {
			c.IsESS = true
		} else if beaconCap&capDMGIBSS != 0 {
			c.IsIBSS = true
		}
	} else {
		c.IsESS = beaconCap&capESS != 0
		c.IsIBSS = beaconCap&capIBSS != 0
	}

	for _, el := range elements {
		switch el.ID {
		case TagRSN:
			r := &suiteReader{data: el.Data}
			if g := c.parseRSNBody(r, opts.UnknownAKMs); g != nil {
				c.rsnGroups = append(c.rsnGroups, *g)
			}
		case TagVendorSpecific:
			typ, ok := vendorOUIType(el.Data)
			if !ok {
				continue
			}
			switch {
			case opts.RSNOverridingSupported &&
				(typ == rsnOverrideVendorOUIType || typ == rsnOverride2VendorOUIType):
				// The payload of an RSN Override element reuses the RSN
				// element's information field layout after the OUI prefix.
				r := &suiteReader{data: el.Data, off: 4}
				c.RSNOverridePresent = true
				if g := c.parseRSNBody(r, opts.UnknownAKMs); g != nil {
					c.overrideGroups = append(c.overrideGroups, *g)
				}
			case typ == wpaVendorOUITypeOne:
				if g := c.parseWPABody(el.Data, opts.UnknownAKMs); g != nil {
					c.wpaGroups = append(c.wpaGroups, *g)
				}
			case typ == wpsVendorOUIType:
				c.IsWPS = true
			case opts.OWESupported && typ == oweVendorOUIType:
				// OWE transition mode: advertise the hidden OWE BSS on the
				// open one so supporting clients can prefer it.
				c.oweGroups = append(c.oweGroups, SecurityGroup{
					Protocol:        ProtocolRSN,
					AKMs:            []KeyMgmt{KeyMgmtOWETransition},
					PairwiseCiphers: []Cipher{CipherCCMP128},
					GroupCipher:     CipherCCMP128,
				})
			}
		}
	}
	return c
}

func vendorOUIType(data []byte) (uint32, bool) {
	if len(data) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data), true
}

// parseRSNBody decodes an RSN information field. A wrong version yields
// nil; anything shorter than declared degrades to whatever lists were
// fully read, and the group still counts toward the capability string.
func (c *Capabilities) parseRSNBody(r *suiteReader, unknownAKMs map[uint32]KeyMgmt) *SecurityGroup {
	version, ok := r.u16()
	if !ok || version != rsneVersion {
		return nil
	}
	g := &SecurityGroup{Protocol: ProtocolRSN}

	suite, ok := r.u32()
	if !ok {
		return g
	}
	g.GroupCipher = rsnCipher(suite)

	cipherCount, ok := r.u16()
	if !ok {
		return g
	}
	ciphers := make([]Cipher, 0, cipherCount)
	for i := 0; i < cipherCount; i++ {
		s, ok := r.u32()
		if !ok {
			return g
		}
		ciphers = append(ciphers, rsnCipher(s))
	}
	g.PairwiseCiphers = ciphers

	akmCount, ok := r.u16()
	if !ok {
		return g
	}
	akms := make([]KeyMgmt, 0, akmCount)
	for i := 0; i < akmCount; i++ {
		s, ok := r.u32()
		if !ok {
			return g
		}
		akms = append(akms, rsnAKM(s, unknownAKMs))
	}
	if len(akms) == 0 {
		// An empty AKM list means enterprise authentication.
		akms = append(akms, KeyMgmtEAP)
	}
	g.AKMs = akms

	// Optional tail: RSN capabilities, PMKID list, group management cipher.
	caps, ok := r.u16()
	if !ok {
		return g
	}
	c.MFPRequired = c.MFPRequired || caps&rsnCapMFPRequired != 0
	c.MFPCapable = c.MFPCapable || caps&rsnCapMFPCapable != 0

	pmkidCount, ok := r.u16()
	if !ok {
		return g
	}
	if !r.skip(pmkidCount * 16) {
		return g
	}
	if r.remaining() < 4 {
		return g
	}
	if s, ok := r.u32(); ok {
		g.GroupManagementCipher = rsnCipher(s)
	}
	return g
}

// parseWPABody decodes a vendor WPA (type 1) information field, OUI prefix
// included.
func (c *Capabilities) parseWPABody(data []byte, unknownAKMs map[uint32]KeyMgmt) *SecurityGroup {
	r := &suiteReader{data: data, off: 4}
	version, ok := r.u16()
	if !ok || version != wpaVendorOUIVersion {
		return nil
	}
	g := &SecurityGroup{Protocol: ProtocolWPA}

	suite, ok := r.u32()
	if !ok {
		return g
	}
	g.GroupCipher = wpaCipher(suite)

	cipherCount, ok := r.u16()
	if !ok {
		return g
	}
	ciphers := make([]Cipher, 0, cipherCount)
	for i := 0; i < cipherCount; i++ {
		s, ok := r.u32()
		if !ok {
			return g
		}
		ciphers = append(ciphers, wpaCipher(s))
	}
	g.PairwiseCiphers = ciphers

	akmCount, ok := r.u16()
	if !ok {
		return g
	}
	akms := make([]KeyMgmt, 0, akmCount)
	for i := 0; i < akmCount; i++ {
		s, ok := r.u32()
		if !ok {
			return g
		}
		switch s {
		case wpaAKMEAP:
			akms = append(akms, KeyMgmtEAP)
		case wpaAKMPSK:
			akms = append(akms, KeyMgmtPSK)
		default:
			akms = append(akms, remapAKM(s, unknownAKMs))
		}
	}
	if len(akms) == 0 {
		akms = append(akms, KeyMgmtEAP)
	}
	g.AKMs = akms
	return g
}

func remapAKM(suite uint32, unknownAKMs map[uint32]KeyMgmt) KeyMgmt {
	if k, ok := unknownAKMs[suite]; ok {
		return k
	}
	return KeyMgmtUnknown
}

func rsnAKM(suite uint32, unknownAKMs map[uint32]KeyMgmt) KeyMgmt {
	switch suite {
	case rsnAKMEAP:
		return KeyMgmtEAP
	case rsnAKMPSK:
		return KeyMgmtPSK
	case rsnAKMFTEAP:
		return KeyMgmtFTEAP
	case rsnAKMFTPSK:
		return KeyMgmtFTPSK
	case rsnAKMEAPSHA256:
		return KeyMgmtEAPSHA256
	case rsnAKMPSKSHA256:
		return KeyMgmtPSKSHA256
	case rsnAKMSAE:
		return KeyMgmtSAE
	case rsnAKMFTSAE:
		return KeyMgmtFTSAE
	case rsnAKMSAEExtKey:
		return KeyMgmtSAEExtKey
	case rsnAKMFTSAEExtKey:
		return KeyMgmtFTSAEExtKey
	case rsnAKMOWE:
		return KeyMgmtOWE
	case rsnAKMEAPSuiteB192:
		return KeyMgmtEAPSuiteB192
	case rsnOSEN:
		return KeyMgmtOSEN
	case rsnAKMFILSSHA256:
		return KeyMgmtFILSSHA256
	case rsnAKMFILSSHA384:
		return KeyMgmtFILSSHA384
	case rsnAKMDPP:
		return KeyMgmtDPP
	case rsnAKMFTPSKSHA384:
		return KeyMgmtFTPSKSHA384
	case rsnAKMEAPFTSHA384:
		return KeyMgmtEAPFTSHA384
	case rsnAKMPASN:
		return KeyMgmtPASN
	}
	return remapAKM(suite, unknownAKMs)
}

func rsnCipher(suite uint32) Cipher {
	switch suite {
	case rsnCipherNone:
		return CipherNone
	case rsnCipherTKIP:
		return CipherTKIP
	case rsnCipherCCMP:
		return CipherCCMP128
	case rsnCipherCCMP256:
		return CipherCCMP256
	case rsnCipherGCMP128:
		return CipherGCMP128
	case rsnCipherGCMP256:
		return CipherGCMP256
	case rsnCipherNoGroupAddressed:
		return CipherNoGroupAddressed
	case rsnCipherBIPGMAC128:
		return CipherBIPGMAC128
	case rsnCipherBIPGMAC256:
		return CipherBIPGMAC256
	case rsnCipherBIPCMAC256:
		return CipherBIPCMAC256
	}
	return CipherNone
}

func wpaCipher(suite uint32) Cipher {
	switch suite {
	case wpaCipherNone:
		return CipherNone
	case wpaCipherTKIP:
		return CipherTKIP
	case wpaCipherCCMP:
		return CipherCCMP128
	}
	return CipherNone
}

// Groups returns every decoded security group in capability string order:
// WPA groups, then base RSN, then overrides, then any synthesized OWE
// transition group.
func (c Capabilities) Groups() []SecurityGroup {
	out := make([]SecurityGroup, 0,
		len(c.wpaGroups)+len(c.rsnGroups)+len(c.overrideGroups)+len(c.oweGroups))
	out = append(out, c.wpaGroups...)
	out = append(out, c.rsnGroups...)
	out = append(out, c.overrideGroups...)
	out = append(out, c.oweGroups...)
	return out
}

// String builds the capability line the way wpa_supplicant renders it for
// scan results. Bracket order is fixed regardless of how the elements were
// ordered on the wire: WPA groups, WPA2 compatibility duplicates with
// their RSN groups, override groups, OWE transition, then the MFPR/MFPC,
// RSNO, WPS, ESS/IBSS and WEP markers.
func (c Capabilities) String() string {
	var b strings.Builder
	for _, g := range c.wpaGroups {
		b.WriteString(g.bracket())
	}
	rsnish := make([]SecurityGroup, 0, len(c.rsnGroups)+len(c.overrideGroups)+len(c.oweGroups))
	rsnish = append(rsnish, c.rsnGroups...)
	rsnish = append(rsnish, c.overrideGroups...)
	rsnish = append(rsnish, c.oweGroups...)
	for _, g := range rsnish {
		capability := g.bracket()
		b.WriteString(g.wpa2Bracket(capability))
		b.WriteString(capability)
	}
	if c.MFPRequired {
		b.WriteString("[MFPR]")
	}
	if c.MFPCapable {
		b.WriteString("[MFPC]")
	}
	if c.RSNOverridePresent {
		b.WriteString("[RSNO]")
	}
	if c.IsWPS {
		b.WriteString("[WPS]")
	}
	if c.IsESS {
		b.WriteString("[ESS]")
	}
	if c.IsIBSS {
		b.WriteString("[IBSS]")
	}
	if len(rsnish) == 0 && len(c.wpaGroups) == 0 && c.IsPrivacy {
		// Privacy without a recognized protocol is legacy WEP.
		b.WriteString("[WEP]")
	}
	return b.String()
}

// bracket renders one protocol group, e.g. "[RSN-PSK+SAE-CCMP-128]".
func (g SecurityGroup) bracket() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(g.Protocol.String())
	for i, akm := range g.AKMs {
		b.WriteString(sep(i))
		b.WriteString(akm.String())
	}
	for i, cipher := range g.PairwiseCiphers {
		b.WriteString(sep(i))
		b.WriteString(cipher.String())
	}
	b.WriteString("]")
	return b.String()
}

// wpa2Bracket renders the backward compatibility duplicate emitted before
// WPA2-era RSN groups. Suite B and pure WPA3 groups get none, and in
// WPA3 transition mode the duplicate lists only the first AKM.
func (g SecurityGroup) wpa2Bracket(capability string) string {
	if strings.Contains(capability, "EAP_SUITE_B_192") {
		return ""
	}
	if !strings.Contains(capability, "RSN-EAP") && !strings.Contains(capability, "RSN-FT/EAP") &&
		!strings.Contains(capability, "RSN-PSK") && !strings.Contains(capability, "RSN-FT/PSK") {
		return ""
	}
	var b strings.Builder
	b.WriteString("[WPA2")
	for i, akm := range g.AKMs {
		b.WriteString(sep(i))
		b.WriteString(akm.String())
		if strings.Contains(capability, "SAE") {
			break
		}
	}
	for i, cipher := range g.PairwiseCiphers {
		b.WriteString(sep(i))
		b.WriteString(cipher.String())
	}
	b.WriteString("]")
	return b.String()
}

func sep(i int) string {
	if i == 0 {
		return "-"
	}
	return "+"
}
