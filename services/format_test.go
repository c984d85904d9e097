package services

import "testing"

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "0,00 €"},
		{"small", 45.5, "45,50 €"},
		{"three digits", 999.99, "999,99 €"},
		{"thousands", 1234.56, "1 234,56 €"},
		{"millions", 1234567.89, "1 234 567,89 €"},
		{"billions", 1234567890.12, "1 234 567 890,12 €"},
		{"negative", -1234.56, "-1 234,56 €"},
		{"rounding", 1.999, "2,00 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatEUR(tt.amount)
			if got != tt.want {
				t.Errorf("FormatEUR(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole", 100, "100"},
		{"decimal", 12.5, "12.50"},
		{"zero", 0, "0"},
		{"negative whole", -4, "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQty(tt.input); got != tt.want {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPct(t *testing.T) {
	pct := 55.555
	if got := FormatPct(&pct); got != "55.6 %" {
		t.Errorf("FormatPct(&55.555) = %q, want \"55.6 %%\"", got)
	}
	if got := FormatPct(nil); got != "-" {
		t.Errorf("FormatPct(nil) = %q, want \"-\"", got)
	}
}

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "Zero Euros Only"},
		{"single digit", 7, "Seven Euros Only"},
		{"teens", 14, "Fourteen Euros Only"},
		{"tens", 85, "Eighty Five Euros Only"},
		{"hundreds", 342, "Three Hundred and Forty Two Euros Only"},
		{"round hundred", 500, "Five Hundred Euros Only"},
		{"thousands", 1200, "One Thousand Two Hundred Euros Only"},
		{"large", 913183, "Nine Hundred Thirteen Thousand One Hundred and Eighty Three Euros Only"},
		{"millions", 2500000, "Two Million Five Hundred Thousand Euros Only"},
		{"rounds cents", 99.6, "One Hundred Euros Only"},
		{"negative", -42, "Negative Forty Two Euros Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountToWords(tt.amount)
			if got != tt.want {
				t.Errorf("AmountToWords(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
