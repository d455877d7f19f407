package logging

import "testing"

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"dana@example.com": "d**a@example.com",
		"ab@example.com":   "**@example.com",
		"not-an-email":     "no...il",
		"x@":               "**",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Errorf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskPhone(t *testing.T) {
	if got := MaskPhone("050-1234567"); got != "********567" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := MaskPhone("12"); got != "**" {
		t.Fatalf("unexpected mask %q", got)
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger, err := New("not-a-level", FormatJSON)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Fatalf("debug should be disabled at info level")
	}
	if OrNop(nil) == nil {
		t.Fatalf("OrNop returned nil")
	}
}
