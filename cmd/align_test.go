package cmd

import "testing"

func TestLangFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"video.da.vtt", "da"},
		{"/tmp/ws/temp.en.vtt", "en"},
		{"video.vtt", ""},
		{"temp.en-US.vtt", "en-US"},
	}
	for _, tt := range tests {
		if got := langFromFilename(tt.in); got != tt.want {
			t.Errorf("langFromFilename(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a longer string entirely", 10, "a longe..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q; want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
