package espeak

import (
	"context"
	"testing"
)

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"haɪ\n", "haɪ"},
		{"'haɪ wɜːld'", "haɪ wɜːld"},
		{"haɪ\n wɜːld\n", "haɪ wɜːld"},
		{"  ", ""},
		{`"ˈhɛlæʊ"`, "ˈhɛlæʊ"},
	}
	for _, tt := range tests {
		if got := CleanOutput(tt.in); got != tt.want {
			t.Errorf("CleanOutput(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestVoiceFor(t *testing.T) {
	tests := []struct {
		configured string
		base       string
		want       string
	}{
		{"en-us", "da", "en-us"}, // explicit voice wins
		{"", "da", "da"},
		{"", "", "en"},
	}
	for _, tt := range tests {
		if got := VoiceFor(tt.configured, tt.base); got != tt.want {
			t.Errorf("VoiceFor(%q, %q) = %q; want %q", tt.configured, tt.base, got, tt.want)
		}
	}
}

func TestNew_MissingBinaryDisables(t *testing.T) {
	a := New("definitely-not-a-real-espeak-binary", "da", nil)
	if a.Enabled() {
		t.Fatal("annotator should be disabled when the binary is missing")
	}
	if got := a.IPA(context.Background(), "hej"); got != "" {
		t.Errorf("disabled annotator returned %q", got)
	}
}
