package typeset

import "testing"

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeDefault, false},
		{"post", ModeTypeset, false},
		{"typeset", ModeTypeset, false},
		{"pre", ModeConvert, false},
		{"convert", ModeConvert, false},
		{"  Post  ", ModeTypeset, false},
		{"PRE", ModeConvert, false},
		{"svg", ModeDefault, true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseHide(t *testing.T) {
	cases := []struct {
		in      string
		want    HidePolicy
		wantErr bool
	}{
		{"", HideNone, false},
		{"none", HideNone, false},
		{"first", HideFirst, false},
		{"every", HideEvery, false},
		{" First ", HideFirst, false},
		{"EVERY", HideEvery, false},
		{"sometimes", HideNone, true},
	}
	for _, tc := range cases {
		got, err := ParseHide(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseHide(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseHide(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestModeString(t *testing.T) {
	cases := map[Mode]string{
		ModeDefault: "default",
		ModeTypeset: "typeset",
		ModeConvert: "convert",
		Mode(9):     "Mode(9)",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(mode), got, want)
		}
	}
}

func TestHidePolicyString(t *testing.T) {
	cases := map[HidePolicy]string{
		HideDefault:   "default",
		HideNone:      "none",
		HideFirst:     "first",
		HideEvery:     "every",
		HidePolicy(9): "HidePolicy(9)",
	}
	for policy, want := range cases {
		if got := policy.String(); got != want {
			t.Errorf("HidePolicy(%d).String() = %q, want %q", int(policy), got, want)
		}
	}
}

func TestConversionAsync(t *testing.T) {
	if (Conversion{Function: "tex2mml"}).Async() {
		t.Error("tex2mml is synchronous")
	}
	if !(Conversion{Function: "tex2mmlPromise"}).Async() {
		t.Error("the Promise suffix marks a function asynchronous")
	}
	if (Conversion{}).Async() {
		t.Error("an unset function is not asynchronous")
	}
}
