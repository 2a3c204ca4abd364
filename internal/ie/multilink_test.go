package ie

import "testing"

func mlElement(data ...byte) Element {
	return Element{ID: TagExtension, IDExt: TagExtMultiLink, Data: data}
}

func TestParseMultiLink_CommonInfoOnly(t *testing.T) {
	ml, err := ParseMultiLink(mlElement(
		0x10, 0x00, // basic, link id present
		0x08,
		0x02, 0x34, 0x56, 0x78, 0x9A, 0xBC,
		0x05,
	))
	if err != nil {
		t.Fatalf("ParseMultiLink: %v", err)
	}
	if !ml.Present {
		t.Fatal("Present = false")
	}
	if ml.LinkID != 5 {
		t.Errorf("LinkID = %d, want 5", ml.LinkID)
	}
	if ml.MLDMacAddress.String() != "02:34:56:78:9a:bc" {
		t.Errorf("MLD MAC = %s", ml.MLDMacAddress)
	}
	if len(ml.AffiliatedLinks) != 0 {
		t.Errorf("links = %v", ml.AffiliatedLinks)
	}
}

func TestParseMultiLink_NoLinkID(t *testing.T) {
	ml, err := ParseMultiLink(mlElement(
		0x00, 0x00,
		0x07,
		0x02, 0x34, 0x56, 0x78, 0x9A, 0xBC,
	))
	if err != nil {
		t.Fatalf("ParseMultiLink: %v", err)
	}
	if ml.LinkID != InvalidLinkID {
		t.Errorf("LinkID = %d, want invalid", ml.LinkID)
	}
}

func TestParseMultiLink_PerStaProfiles(t *testing.T) {
	ml, err := ParseMultiLink(mlElement(
		0x10, 0x00,
		0x08,
		0x02, 0x34, 0x56, 0x78, 0x9A, 0xBC,
		0x02,
		// Per-STA profile, link 0, MAC present
		0x00, 0x0B, 0x20, 0x00, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		// Unknown sub-element, skipped
		0xDD, 0x04, 0xAA, 0xBB,
		// Per-STA profile, link 1, no MAC
		0x00, 0x05, 0x01, 0x00, 0x01,
	))
	if err != nil {
		t.Fatalf("ParseMultiLink: %v", err)
	}
	if len(ml.AffiliatedLinks) != 2 {
		t.Fatalf("got %d links, want 2", len(ml.AffiliatedLinks))
	}
	if ml.AffiliatedLinks[0].LinkID != 0 ||
		ml.AffiliatedLinks[0].APMacAddress.String() != "00:00:00:00:00:01" {
		t.Errorf("link 0 = %+v", ml.AffiliatedLinks[0])
	}
	if ml.AffiliatedLinks[1].LinkID != 1 || ml.AffiliatedLinks[1].APMacAddress != nil {
		t.Errorf("link 1 = %+v", ml.AffiliatedLinks[1])
	}
}

func TestParseMultiLink_NonBasicTypeRejected(t *testing.T) {
	_, err := ParseMultiLink(mlElement(
		0x01, 0x00, // probe request variant
		0x07,
		0x02, 0x34, 0x56, 0x78, 0x9A, 0xBC,
	))
	if err == nil {
		t.Error("want error for non-basic multi-link type")
	}
}

func TestParseMultiLink_BadSubElementLength(t *testing.T) {
	_, err := ParseMultiLink(mlElement(
		0x00, 0x00,
		0x07,
		0x02, 0x34, 0x56, 0x78, 0x9A, 0xBC,
		0x00, 0x00, 0x00, 0x00, 0x00, // zero-length sub-element
	))
	if err == nil {
		t.Error("want error for zero sub-element length")
	}
}

func TestParseRNR(t *testing.T) {
	el := Element{ID: TagRNR, Data: []byte{
		// AP info: one entry, 4-byte TBTT info, 6 GHz channel 5
		0x00, 0x04, 133, 5,
		0x00, 0x00, 0x01, 0x00,
		// AP info: one entry, 16-byte TBTT info with BSSID, 5 GHz channel 36
		0x00, 0x10, 115, 36,
		0x00, 0xAA, 0xBB, 0xCC, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00,
	}}
	rnr, err := ParseRNR(el)
	if err != nil {
		t.Fatalf("ParseRNR: %v", err)
	}
	if len(rnr.AffiliatedLinks) != 2 {
		t.Fatalf("got %d links, want 2", len(rnr.AffiliatedLinks))
	}
	first := rnr.AffiliatedLinks[0]
	if first.LinkID != 1 || first.Band != Band6GHz || first.Channel != 5 || first.APMacAddress != nil {
		t.Errorf("link 0 = %+v", first)
	}
	second := rnr.AffiliatedLinks[1]
	if second.LinkID != 2 || second.Band != Band5GHz || second.Channel != 36 {
		t.Errorf("link 1 = %+v", second)
	}
	if second.APMacAddress.String() != "aa:bb:cc:00:00:01" {
		t.Errorf("link 1 MAC = %s", second.APMacAddress)
	}
}

func TestParseRNR_NonZeroMLDIDSkipped(t *testing.T) {
	el := Element{ID: TagRNR, Data: []byte{
		0x00, 0x04, 133, 5,
		0x00, 0x01, 0x01, 0x00, // MLD id 1: another MLD's link
	}}
	rnr, err := ParseRNR(el)
	if err != nil {
		t.Fatalf("ParseRNR: %v", err)
	}
	if len(rnr.AffiliatedLinks) != 0 {
		t.Errorf("links = %v", rnr.AffiliatedLinks)
	}
}

func TestParseRNR_BadOperatingClass(t *testing.T) {
	el := Element{ID: TagRNR, Data: []byte{
		0x00, 0x04, 200, 5,
		0x00, 0x00, 0x01, 0x00,
	}}
	if _, err := ParseRNR(el); err == nil {
		t.Error("want error for unknown operating class")
	}
}

func TestParseRNR_OtherInfoLengthsSkipped(t *testing.T) {
	el := Element{ID: TagRNR, Data: []byte{
		0x00, 0x02, 133, 5, // 2-byte TBTT info carries no MLD params
		0x00, 0x00,
		0x00, 0x04, 133, 9,
		0x00, 0x00, 0x03, 0x00,
	}}
	rnr, err := ParseRNR(el)
	if err != nil {
		t.Fatalf("ParseRNR: %v", err)
	}
	if len(rnr.AffiliatedLinks) != 1 || rnr.AffiliatedLinks[0].LinkID != 3 {
		t.Errorf("links = %v", rnr.AffiliatedLinks)
	}
}
