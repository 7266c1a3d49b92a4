package money

import "testing"

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{450, "£450.00"},
		{475.5, "£475.50"},
		{0, "£0.00"},
		{1250, "£1,250.00"},
		{-12.5, "-£12.50"},
	}

	for _, tt := range tests {
		if got := FormatGBP(tt.amount); got != tt.want {
			t.Errorf("FormatGBP(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestNewFormatterRejectsUnknownCurrency(t *testing.T) {
	if _, err := NewFormatter("XXY", "en-GB"); err == nil {
		t.Fatal("expected error for unknown currency")
	}
}

func TestNewFormatterUsesLocaleSymbols(t *testing.T) {
	tests := []struct {
		code   string
		locale string
		want   string
	}{
		{"EUR", "en-GB", "€10.00"},
		{"USD", "en-GB", "$10.00"},
		{"USD", "en-US", "$10.00"},
		{"JPY", "en-GB", "¥10.00"},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.code, tt.locale)
		if err != nil {
			t.Fatalf("%s/%s: unexpected error: %v", tt.code, tt.locale, err)
		}
		if got := f.Format(10); got != tt.want {
			t.Errorf("%s/%s: Format(10) = %q, want %q", tt.code, tt.locale, got, tt.want)
		}
	}
}

func TestDisplaySymbol(t *testing.T) {
	if got := displaySymbol("CHF"); got != "CHF " {
		t.Fatalf("alphabetic symbols need a separator, got %q", got)
	}
	if got := displaySymbol("£"); got != "£" {
		t.Fatalf("unexpected symbol %q", got)
	}
}

func TestNewFormatterAlphabeticSymbol(t *testing.T) {
	f, err := NewFormatter("CHF", "en-GB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.Format(10); got != "CHF 10.00" {
		t.Fatalf("unexpected format %q", got)
	}
	if f.Code() != "CHF" {
		t.Fatalf("unexpected code %q", f.Code())
	}
}
