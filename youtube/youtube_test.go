package youtube

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsVideoID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"short", false},
		{"exactly11ch", true},
		{"has.dot.vtt", false},
	}
	for _, tt := range tests {
		if got := IsVideoID(tt.in); got != tt.want {
			t.Errorf("IsVideoID(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("WatchURL(id) = %q", got)
	}
	url := "https://youtu.be/dQw4w9WgXcQ"
	if got := WatchURL(url); got != url {
		t.Errorf("WatchURL(url) = %q; should pass through", got)
	}
}

func TestSubtitleArgs(t *testing.T) {
	c := NewClient("chrome", "Safari", 3, nil)
	args := c.subtitleArgs("dQw4w9WgXcQ", []string{"da", "en"}, "/tmp/ws/temp.%(ext)s")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"--skip-download",
		"--write-sub",
		"--write-auto-sub",
		"--sub-langs da,en",
		"--sub-format vtt",
		"--retries 3",
		"-o /tmp/ws/temp.%(ext)s",
		"--cookies-from-browser chrome",
		"--impersonate Safari",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q in %q", want, joined)
		}
	}
}

func TestSubtitleArgs_NoCookiesNoImpersonate(t *testing.T) {
	c := NewClient("", "", 0, nil)
	joined := strings.Join(c.subtitleArgs("dQw4w9WgXcQ", []string{"da"}, "out"), " ")
	if strings.Contains(joined, "--cookies-from-browser") {
		t.Error("empty cookie source must omit --cookies-from-browser")
	}
	if strings.Contains(joined, "--impersonate") {
		t.Error("empty impersonation must omit --impersonate")
	}
}

func TestWorkspaceSubtitlePath(t *testing.T) {
	ws := Workspace{Dir: "/tmp/ytparallel-x"}
	if got := ws.SubtitlePath("da"); got != filepath.Join("/tmp/ytparallel-x", "temp.da.vtt") {
		t.Errorf("SubtitlePath = %q", got)
	}
}

func TestAcquisitionError_Message(t *testing.T) {
	err := &AcquisitionError{
		Ref:    "dQw4w9WgXcQ",
		Output: "ERROR: Sign in to confirm you're not a bot",
		Err:    errors.New("exit status 1"),
	}
	msg := err.Error()
	if !strings.Contains(msg, "dQw4w9WgXcQ") {
		t.Error("message should name the video reference")
	}
	if !strings.Contains(msg, "Sign in to confirm") {
		t.Error("message should carry yt-dlp's diagnostic text verbatim")
	}

	missing := &AcquisitionError{Ref: "dQw4w9WgXcQ", Lang: "da"}
	if !strings.Contains(missing.Error(), "no da subtitle track") {
		t.Errorf("missing-track message wrong: %q", missing.Error())
	}
}
