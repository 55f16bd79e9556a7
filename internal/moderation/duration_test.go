package moderation

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"30s", 30, true},
		{"5m", 300, true},
		{"1h", 3600, true},
		{"2d", 172800, true},
		{"10", 600, true}, // sin sufijo → minutos
		{" 5M ", 300, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0m", 0, false},
		{"-5m", 0, false},
		{"m", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDuration(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDuration(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{30, "30s"},
		{300, "5m"},
		{3600, "1h"},
		{172800, "2d"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSanitizeReason(t *testing.T) {
	if got := SanitizeReason("  spam   y\nflood  "); got != "spam y flood" {
		t.Errorf("SanitizeReason() = %q, want %q", got, "spam y flood")
	}
	if got := SanitizeReason(""); got != "Sin razón especificada" {
		t.Errorf("SanitizeReason(\"\") = %q, want default", got)
	}

	long := make([]byte, 1200)
	for i := range long {
		long[i] = 'a'
	}
	got := SanitizeReason(string(long))
	if len(got) != 1000 {
		t.Errorf("SanitizeReason(long) length = %d, want 1000", len(got))
	}
	if got[len(got)-3:] != "..." {
		t.Errorf("SanitizeReason(long) does not end with ellipsis")
	}
}

func TestParseUserID(t *testing.T) {
	if got, err := ParseUserID("123456789012345678"); err != nil || got != 123456789012345678 {
		t.Errorf("ParseUserID() = %d, %v; want 123456789012345678, nil", got, err)
	}
	if _, err := ParseUserID("no-es-un-id"); err == nil {
		t.Error("ParseUserID(invalid) returned nil error, want error")
	}
}
