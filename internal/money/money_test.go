package money

import "testing"

func TestParseMinor(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1299", 129900, false},
		{"1299.50", 129950, false},
		{"0.5", 50, false},
		{".75", 75, false},
		{"-20", -2000, false},
		{"+3", 300, false},
		{"1.999", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"12.x", 0, true},
		{"-", 0, true},
		{"+", 0, true},
		{".", 0, true},
		{"-.", 0, true},
		{"92233720368547758.07", 9223372036854775807, false},
		{"92233720368547758.08", 0, true},
		{"92233720368547759", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMinor(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMinor(%q): expected error, got %d", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMinor(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMinor(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatMinor(t *testing.T) {
	if got := FormatMinor(129950); got != "1299.50" {
		t.Errorf("FormatMinor(129950) = %q", got)
	}
	if got := FormatMinor(-5); got != "-0.05" {
		t.Errorf("FormatMinor(-5) = %q", got)
	}
	if got := FormatMinor(0); got != "0.00" {
		t.Errorf("FormatMinor(0) = %q", got)
	}
}

func TestPercentZeroTotal(t *testing.T) {
	if got := Percent(100, 0); !got.IsZero() {
		t.Errorf("Percent(100, 0) = %s, want 0", got)
	}
}

func TestPercent(t *testing.T) {
	got := Percent(2705000, 27750000)
	if got.String() != "9.75" {
		t.Errorf("Percent = %s, want 9.75", got)
	}
}
