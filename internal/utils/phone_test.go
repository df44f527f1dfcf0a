package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "(91) 99999-8888", want: "91999998888"},
		{in: "+55 91 99999 8888", want: "5591999998888"},
		{in: "91999998888", want: "91999998888"},
		{in: "  91 9 9999-8888  ", want: "91999998888"},
		{in: "abc", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidPIN(t *testing.T) {
	valid := []string{"0000", "1234", "9999"}
	for _, pin := range valid {
		if !ValidPIN(pin) {
			t.Fatalf("expected %q to be a valid PIN", pin)
		}
	}

	invalid := []string{"", "123", "12345", "12a4", "12 4", "١٢٣٤"}
	for _, pin := range invalid {
		if ValidPIN(pin) {
			t.Fatalf("expected %q to be rejected", pin)
		}
	}
}
