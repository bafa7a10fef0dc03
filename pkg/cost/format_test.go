package cost

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "$0"},
		{value: 999.4, want: "$999"},
		{value: 1234, want: "$1,234"},
		{value: 15384.615, want: "$15,385"},
		{value: 140384.615, want: "$140,385"},
		{value: 1234567.2, want: "$1,234,567"},
		{value: 2.5, want: "$3"},
		{value: 15384.5, want: "$15,385"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.value); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "0"},
		{value: 2400, want: "2,400"},
		{value: 1700.2, want: "1,700"},
		{value: 999999, want: "999,999"},
		{value: 0.5, want: "1"},
		{value: 2.5, want: "3"},
		{value: 1700.5, want: "1,701"},
	}

	for _, tt := range tests {
		if got := FormatHours(tt.value); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatDefaults(t *testing.T) {
	r := Estimate(DefaultInputs())

	if got := FormatCurrency(r.TotalCost); got != "$140,385" {
		t.Errorf("Total cost formatted as %q, want $140,385", got)
	}
	if got := FormatHours(r.TotalHours); got != "2,400" {
		t.Errorf("Total hours formatted as %q, want 2,400", got)
	}
	if got := FormatCurrency(r.ProductivityImpact); got != "$15,385" {
		t.Errorf("Productivity impact formatted as %q, want $15,385", got)
	}
}

func TestFormatHoursHalfFromEstimate(t *testing.T) {
	b := Detail(Inputs{Employees: 5, EmployeeHours: 0.5})
	if b.TotalHours != 2.5 {
		t.Fatalf("TotalHours = %v, want 2.5", b.TotalHours)
	}
	if got := FormatHours(b.TotalHours); got != "3" {
		t.Errorf("FormatHours(%v) = %q, want 3", b.TotalHours, got)
	}
}
