package ie

import "testing"

func TestChannelToFrequency(t *testing.T) {
	cases := []struct {
		channel int
		band    Band
		want    int
	}{
		{1, Band24GHz, 2412},
		{6, Band24GHz, 2437},
		{13, Band24GHz, 2472},
		{14, Band24GHz, 2484},
		{15, Band24GHz, FrequencyUnspecified},
		{36, Band5GHz, 5180},
		{177, Band5GHz, 5885},
		{183, Band5GHz, 4915},
		{31, Band5GHz, FrequencyUnspecified},
		{1, Band6GHz, 5955},
		{2, Band6GHz, 5935},
		{253, Band6GHz, 7215},
		{254, Band6GHz, FrequencyUnspecified},
		{1, Band60GHz, 58320},
		{6, Band60GHz, 69120},
		{7, Band60GHz, FrequencyUnspecified},
		{36, BandUnspecified, FrequencyUnspecified},
	}
	for _, c := range cases {
		if got := ChannelToFrequency(c.channel, c.band); got != c.want {
			t.Errorf("ChannelToFrequency(%d, %s) = %d, want %d", c.channel, c.band, got, c.want)
		}
	}
}

func TestFrequencyToChannel(t *testing.T) {
	cases := []struct {
		freq int
		want int
	}{
		{2412, 1},
		{2437, 6},
		{2472, 13},
		{2484, 14},
		{4915, 183},
		{5180, 36},
		{5885, 177},
		{5935, 2},
		{5955, 1},
		{7215, 253},
		{58320, 1},
		{69120, 6},
		{100, 0},
		{5900, 0},
	}
	for _, c := range cases {
		if got := FrequencyToChannel(c.freq); got != c.want {
			t.Errorf("FrequencyToChannel(%d) = %d, want %d", c.freq, got, c.want)
		}
	}
}

func TestBandFromOperatingClass(t *testing.T) {
	cases := []struct {
		opClass int
		channel int
		want    Band
	}{
		{81, 11, Band24GHz},
		{81, 15, BandUnspecified},
		{120, 149, Band5GHz},
		{120, 20, BandUnspecified},
		{133, 200, Band6GHz},
		{133, 255, BandUnspecified},
		{180, 3, Band60GHz},
		{180, 7, BandUnspecified},
		{0, 1, BandUnspecified},
	}
	for _, c := range cases {
		if got := BandFromOperatingClass(c.opClass, c.channel); got != c.want {
			t.Errorf("BandFromOperatingClass(%d, %d) = %s, want %s", c.opClass, c.channel, got, c.want)
		}
	}
}

func TestBandFromFrequency(t *testing.T) {
	cases := []struct {
		freq int
		want Band
	}{
		{2412, Band24GHz},
		{2484, Band24GHz},
		{5180, Band5GHz},
		{5935, Band6GHz},
		{5945, Band6GHz},
		{7105, Band6GHz},
		{58320, Band60GHz},
		{100, BandUnspecified},
	}
	for _, c := range cases {
		if got := BandFromFrequency(c.freq); got != c.want {
			t.Errorf("BandFromFrequency(%d) = %s, want %s", c.freq, got, c.want)
		}
	}
}

func TestIs60GHz(t *testing.T) {
	if !Is60GHz(45000) {
		t.Error("45000 MHz should be DMG")
	}
	if Is60GHz(7105) {
		t.Error("7105 MHz should not be DMG")
	}
}
