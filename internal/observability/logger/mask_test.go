package logger

import "testing"

func TestMaskAccessKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1234", "****"},
		{"35240112345678000190550010000012341000012349", "****2349"},
		{"  abc123  ", "****c123"},
	}
	for _, tc := range cases {
		if got := MaskAccessKey(tc.in); got != tc.want {
			t.Fatalf("MaskAccessKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
