package ie

import "testing"

func htOpElement(secondOffset byte) Element {
	data := make([]byte, 22)
	data[1] = secondOffset
	return Element{ID: TagHTOperation, Data: data}
}

func TestParseHTOperation(t *testing.T) {
	op, err := ParseHTOperation(htOpElement(0x01))
	if err != nil {
		t.Fatalf("ParseHTOperation: %v", err)
	}
	if op.ChannelWidth() != Width40MHz {
		t.Errorf("width = %s, want 40MHz", op.ChannelWidth())
	}
	if got := op.CenterFreq0(5180); got != 5190 {
		t.Errorf("CenterFreq0 = %d, want 5190", got)
	}

	op, _ = ParseHTOperation(htOpElement(0x03))
	if got := op.CenterFreq0(5200); got != 5190 {
		t.Errorf("CenterFreq0 below = %d, want 5190", got)
	}

	op, _ = ParseHTOperation(htOpElement(0x00))
	if op.ChannelWidth() != Width20MHz {
		t.Errorf("width = %s, want 20MHz", op.ChannelWidth())
	}
}

func TestParseHTOperation_TooShort(t *testing.T) {
	_, err := ParseHTOperation(Element{ID: TagHTOperation, Data: make([]byte, 21)})
	if err == nil {
		t.Error("want error for short HT operation")
	}
}

func TestParseVHTOperation(t *testing.T) {
	cases := []struct {
		data     []byte
		width    ChannelWidth
		cf0, cf1 int
	}{
		{[]byte{0x01, 42, 0, 0, 0}, Width80MHz, 5210, 0},
		{[]byte{0x01, 44, 36, 0, 0}, Width160MHz, 5220, 5180},
		{[]byte{0x01, 54, 36, 0, 0}, Width80Plus80MHz, 5270, 5180},
		{[]byte{0x00, 0, 0, 0, 0}, WidthUnspecified, 0, 0},
	}
	for _, c := range cases {
		op, err := ParseVHTOperation(Element{ID: TagVHTOperation, Data: c.data})
		if err != nil {
			t.Fatalf("ParseVHTOperation(%v): %v", c.data, err)
		}
		if op.ChannelWidth() != c.width {
			t.Errorf("width(%v) = %s, want %s", c.data, op.ChannelWidth(), c.width)
		}
		if op.CenterFreq0() != c.cf0 || op.CenterFreq1() != c.cf1 {
			t.Errorf("centers(%v) = %d/%d, want %d/%d",
				c.data, op.CenterFreq0(), op.CenterFreq1(), c.cf0, c.cf1)
		}
	}
}

func heOpElement(data []byte) Element {
	return Element{ID: TagExtension, IDExt: TagExtHEOperation, Data: data}
}

func TestParseHEOperation_6GHz(t *testing.T) {
	data := []byte{
		0x08, 0x00, 0x02, // params: TWT required, 6 GHz info present
		0x00, 0x00, 0x00,
		20, 0x0B, 20, 28, 0x00, // primary ch 20, 160 MHz, standard power
	}
	op, err := ParseHEOperation(heOpElement(data))
	if err != nil {
		t.Fatalf("ParseHEOperation: %v", err)
	}
	if !op.TWTRequired {
		t.Error("TWTRequired = false")
	}
	if !op.SixGHzInfoPresent {
		t.Fatal("SixGHzInfoPresent = false")
	}
	if op.APType != APType6GHzStandardPower {
		t.Errorf("APType = %s, want standard-power", op.APType)
	}
	if op.PrimaryFrequency() != 6050 {
		t.Errorf("PrimaryFrequency = %d, want 6050", op.PrimaryFrequency())
	}
	if op.ChannelWidth() != Width160MHz {
		t.Errorf("width = %s, want 160MHz", op.ChannelWidth())
	}
	if op.CenterFreq0() != 6050 || op.CenterFreq1() != 6090 {
		t.Errorf("centers = %d/%d, want 6050/6090", op.CenterFreq0(), op.CenterFreq1())
	}
}

func TestParseHEOperation_NestedVHTInfo(t *testing.T) {
	data := []byte{
		0x00, 0x40, 0x00, // VHT info present
		0x00, 0x00, 0x00,
		0x01, 0x28, 0x00, // mode 1, seg 40
	}
	op, err := ParseHEOperation(heOpElement(data))
	if err != nil {
		t.Fatalf("ParseHEOperation: %v", err)
	}
	nested := op.VHTInfoElement()
	if nested == nil {
		t.Fatal("VHTInfoElement = nil")
	}
	vht, err := ParseVHTOperation(*nested)
	if err != nil {
		t.Fatalf("ParseVHTOperation: %v", err)
	}
	if vht.ChannelWidth() != Width80MHz {
		t.Errorf("nested width = %s, want 80MHz", vht.ChannelWidth())
	}
	if vht.CenterFreq0() != 5200 {
		t.Errorf("nested CenterFreq0 = %d, want 5200", vht.CenterFreq0())
	}
}

func TestParseHEOperation_CoHostedBSSShiftsInfo(t *testing.T) {
	data := []byte{
		0x00, 0x80, 0x02, // co-hosted BSS + 6 GHz info
		0x00, 0x00, 0x00,
		0xAA,                   // co-hosted BSSID index
		2, 0x00, 2, 0x00, 0x00, // primary ch 2 (5935 MHz), 20 MHz
	}
	op, err := ParseHEOperation(heOpElement(data))
	if err != nil {
		t.Fatalf("ParseHEOperation: %v", err)
	}
	if op.PrimaryFrequency() != 5935 {
		t.Errorf("PrimaryFrequency = %d, want 5935", op.PrimaryFrequency())
	}
	if op.ChannelWidth() != Width20MHz {
		t.Errorf("width = %s, want 20MHz", op.ChannelWidth())
	}
}

func TestParseHEOperation_DeclaredFieldsMissing(t *testing.T) {
	data := []byte{0x00, 0x40, 0x02, 0x00, 0x00, 0x00, 0x01, 0x28} // too short
	if _, err := ParseHEOperation(heOpElement(data)); err == nil {
		t.Error("want error for truncated HE operation")
	}
}

func ehtOpElement(data []byte) Element {
	return Element{ID: TagExtension, IDExt: TagExtEHTOperation, Data: data}
}

func TestParseEHTOperation(t *testing.T) {
	data := []byte{
		0x03, 0x00, 0x00, 0x00, 0x00, // params: info + disabled subchannels
		0x03, 50, 42, // 160 MHz, CCFS0 50, CCFS1 42
		0x03, 0x00, // bitmap
	}
	op, err := ParseEHTOperation(ehtOpElement(data))
	if err != nil {
		t.Fatalf("ParseEHTOperation: %v", err)
	}
	if op.ChannelWidth() != Width160MHz {
		t.Errorf("width = %s, want 160MHz", op.ChannelWidth())
	}
	if got := op.CenterFreq0(Band5GHz); got != 5250 {
		t.Errorf("CenterFreq0 = %d, want 5250", got)
	}
	if got := op.CenterFreq1(Band5GHz); got != 5210 {
		t.Errorf("CenterFreq1 = %d, want 5210", got)
	}
	if len(op.DisabledSubchannelBitmap) != 2 || op.DisabledSubchannelBitmap[0] != 0x03 {
		t.Errorf("bitmap = %v", op.DisabledSubchannelBitmap)
	}
}

func TestParseEHTOperation_320MHz(t *testing.T) {
	data := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00,
		0x04, 47, 31,
	}
	op, err := ParseEHTOperation(ehtOpElement(data))
	if err != nil {
		t.Fatalf("ParseEHTOperation: %v", err)
	}
	if op.ChannelWidth() != Width320MHz {
		t.Errorf("width = %s, want 320MHz", op.ChannelWidth())
	}
	if got := op.CenterFreq0(Band6GHz); got != 6185 {
		t.Errorf("CenterFreq0 = %d, want 6185", got)
	}
	if got := op.CenterFreq1(Band6GHz); got != 6105 {
		t.Errorf("CenterFreq1 = %d, want 6105", got)
	}
	if got := op.CenterFreq0(BandUnspecified); got != FrequencyUnspecified {
		t.Errorf("CenterFreq0(unspecified band) = %d", got)
	}
}

func TestParseEHTOperation_NoInfo(t *testing.T) {
	op, err := ParseEHTOperation(ehtOpElement([]byte{0x00, 0x00, 0x00, 0x00, 0x00}))
	if err != nil {
		t.Fatalf("ParseEHTOperation: %v", err)
	}
	if op.InfoPresent {
		t.Error("InfoPresent = true")
	}
	if op.ChannelWidth() != Width20MHz {
		t.Errorf("width = %s, want 20MHz", op.ChannelWidth())
	}
}
