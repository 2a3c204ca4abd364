package ie

import "testing"

func TestDetermineMode(t *testing.T) {
	cases := []struct {
		name      string
		frequency int
		maxRate   int
		eht, he   bool
		vht, ht   bool
		erp       bool
		want      WifiMode
	}{
		{"eht wins", 5180, 0, true, true, true, true, true, Mode11BE},
		{"he", 5180, 0, false, true, true, true, true, Mode11AX},
		{"vht on 5ghz", 5180, 0, false, false, true, true, true, Mode11AC},
		{"vht ignored on 2.4ghz", 2437, 0, false, false, true, true, true, Mode11N},
		{"ht", 2437, 0, false, false, false, true, true, Mode11N},
		{"erp", 2437, 0, false, false, false, false, true, Mode11G},
		{"legacy 2.4 slow", 2437, 11000000, false, false, false, false, false, Mode11B},
		{"legacy 2.4 fast", 2437, 54000000, false, false, false, false, false, Mode11G},
		{"legacy 5ghz", 5180, 54000000, false, false, false, false, false, Mode11A},
	}
	for _, c := range cases {
		got := DetermineMode(c.frequency, c.maxRate, c.eht, c.he, c.vht, c.ht, c.erp)
		if got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}
