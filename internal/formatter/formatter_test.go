package formatter

import "testing"

func TestFormatVolume_Boundaries(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1150, "1.1K"},
		{1250, "1.3K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{2_450_000, "2.5M"},
		{52_345_678, "52.3M"},
	}
	for _, tt := range tests {
		if got := FormatVolume(tt.in); got != tt.want {
			t.Errorf("FormatVolume(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{150.1, "$150.10"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{0.125, "$0.13"},
		{-12.3, "-$12.30"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedCurrencyAndPercent(t *testing.T) {
	if got := FormatSignedCurrency(10); got != "+$10.00" {
		t.Errorf("positive change: got %q", got)
	}
	if got := FormatSignedCurrency(0); got != "+$0.00" {
		t.Errorf("zero change: got %q", got)
	}
	if got := FormatSignedCurrency(-1.5); got != "-$1.50" {
		t.Errorf("negative change: got %q", got)
	}
	if got := FormatPercent(10); got != "+10.00%" {
		t.Errorf("positive percent: got %q", got)
	}
	if got := FormatPercent(-0.5); got != "-0.50%" {
		t.Errorf("negative percent: got %q", got)
	}
}

func TestFormat_SignFollowsUnroundedValue(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"currency", FormatCurrency(-0.001), "-$0.00"},
		{"signed currency", FormatSignedCurrency(-0.001), "-$0.00"},
		{"percent", FormatPercent(-0.001), "-0.00%"},
		{"tiny positive percent", FormatPercent(0.001), "+0.00%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestFormatPercent_RoundsStoredValue(t *testing.T) {
	// 1.005 is stored as 1.00499999999999989...
	if got := FormatPercent(1.005); got != "+1.00%" {
		t.Errorf("FormatPercent(1.005) = %q, want %q", got, "+1.00%")
	}
	if got := FormatPercent(0.125); got != "+0.13%" {
		t.Errorf("FormatPercent(0.125) = %q, want %q", got, "+0.13%")
	}
}
