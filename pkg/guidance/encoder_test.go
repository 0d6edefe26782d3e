package guidance

import "testing"

func TestClampDegrees(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{45, 45},
		{-45, -45},
		{90, 90},
		{-90, -90},
		{91, 90},
		{-91, -90},
		{720, 90},
		{-720, -90},
	}
	for _, tt := range tests {
		if got := ClampDegrees(tt.in); got != tt.want {
			t.Errorf("ClampDegrees(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEncodeAngle(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-17, "-17"},
		{180, "90"}, // clamped before encoding
	}
	for _, tt := range tests {
		if got := string(EncodeAngle(tt.in)); got != tt.want {
			t.Errorf("EncodeAngle(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeAngle(t *testing.T) {
	tests := []struct {
		payload string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-90", -90, false},
		{" 15\n", 15, false},
		{"", 0, true},
		{"abc", 0, true},
		{"12.5", 0, true},
		{"1 2", 0, true},
	}
	for _, tt := range tests {
		got, err := DecodeAngle([]byte(tt.payload))
		if tt.wantErr {
			if err == nil {
				t.Errorf("DecodeAngle(%q) = %d, want error", tt.payload, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeAngle(%q): %v", tt.payload, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DecodeAngle(%q) = %d, want %d", tt.payload, got, tt.want)
		}
	}
}
