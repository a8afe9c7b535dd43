// Package youtube shells out to yt-dlp to fetch autotranslated subtitle
// tracks and video metadata. yt-dlp is the only component that touches the
// network; any failure here is fatal and its diagnostic text is surfaced to
// the user verbatim.
package youtube

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ytparallel/logging"
)

// AcquisitionError reports a failed yt-dlp invocation or a missing subtitle
// track. Output carries yt-dlp's own diagnostics.
type AcquisitionError struct {
	Ref    string
	Lang   string
	Output string
	Err    error
}

func (e *AcquisitionError) Error() string {
	msg := fmt.Sprintf("subtitle acquisition failed for %s", e.Ref)
	if e.Lang != "" {
		msg = fmt.Sprintf("no %s subtitle track for %s", e.Lang, e.Ref)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Client invokes yt-dlp. Cookie and impersonation settings are explicit
// values, not ambient process state.
type Client struct {
	// CookiesFromBrowser names the browser whose cookies yt-dlp should use.
	// YouTube only serves autotranslated tracks to logged-in sessions.
	CookiesFromBrowser string
	Impersonate        string
	Retries            int
	Logger             *slog.Logger
}

// NewClient returns a Client with the given settings. A nil logger is
// replaced with a no-op one.
func NewClient(cookies, impersonate string, retries int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		CookiesFromBrowser: cookies,
		Impersonate:        impersonate,
		Retries:            retries,
		Logger:             logger,
	}
}

// Workspace is the per-run temporary directory subtitle files land in.
type Workspace struct {
	Dir string
}

// Cleanup removes the workspace and everything in it.
func (w Workspace) Cleanup() {
	if w.Dir != "" {
		_ = os.RemoveAll(w.Dir)
	}
}

// SubtitlePath returns where a track for the given language code would be
// written inside the workspace.
func (w Workspace) SubtitlePath(lang string) string {
	return filepath.Join(w.Dir, "temp."+lang+".vtt")
}

// IsVideoID reports whether input looks like a bare YouTube video ID rather
// than a URL.
func IsVideoID(input string) bool {
	return len(input) == 11 && !strings.ContainsAny(input, "./:")
}

// WatchURL normalizes a video reference to a full watch URL.
func WatchURL(ref string) string {
	if IsVideoID(ref) {
		return "https://www.youtube.com/watch?v=" + ref
	}
	return ref
}

// subtitleArgs builds the yt-dlp argument list for one subtitle fetch.
// Split out so tests can cover it without running yt-dlp.
func (c *Client) subtitleArgs(ref string, langs []string, outputTemplate string) []string {
	args := []string{
		WatchURL(ref),
		"--skip-download",
		"--write-sub",
		"--write-auto-sub",
		"--sub-langs", strings.Join(langs, ","),
		"--sub-format", "vtt",
		"--retries", fmt.Sprintf("%d", c.Retries),
		"-o", outputTemplate,
	}
	if c.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", c.CookiesFromBrowser)
	}
	if c.Impersonate != "" {
		args = append(args, "--impersonate", c.Impersonate)
	}
	return args
}

// FetchSubtitles downloads the requested language tracks into a fresh
// workspace and returns the path for each language that yt-dlp produced.
// A missing primary track (langs[0]) is an error; missing further tracks are
// left out of the map for the caller to degrade gracefully. The caller owns
// the returned workspace and must Cleanup it.
func (c *Client) FetchSubtitles(ctx context.Context, ref string, langs []string) (map[string]string, Workspace, error) {
	ws := Workspace{Dir: filepath.Join(os.TempDir(), "ytparallel-"+uuid.NewString())}
	if err := os.MkdirAll(ws.Dir, 0o755); err != nil {
		return nil, Workspace{}, fmt.Errorf("create workspace: %w", err)
	}

	outputTemplate := filepath.Join(ws.Dir, "temp.%(ext)s")
	args := c.subtitleArgs(ref, langs, outputTemplate)

	c.Logger.Info("downloading subtitles",
		logging.String("ref", ref),
		logging.String("langs", strings.Join(langs, ",")),
		logging.String("cookies_from_browser", c.CookiesFromBrowser),
	)

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		ws.Cleanup()
		if ctx.Err() != nil {
			return nil, Workspace{}, ctx.Err()
		}
		return nil, Workspace{}, &AcquisitionError{Ref: ref, Output: output.String(), Err: err}
	}

	paths := make(map[string]string, len(langs))
	for _, lang := range langs {
		path := ws.SubtitlePath(lang)
		if _, err := os.Stat(path); err == nil {
			paths[lang] = path
		}
	}

	if len(langs) > 0 {
		if _, ok := paths[langs[0]]; !ok {
			ws.Cleanup()
			return nil, Workspace{}, &AcquisitionError{Ref: ref, Lang: langs[0], Output: output.String()}
		}
	}

	return paths, ws, nil
}

// FetchTitle asks yt-dlp for the video title. Errors are returned rather than
// fatal: the caller falls back to the video reference for naming.
func (c *Client) FetchTitle(ctx context.Context, ref string) (string, error) {
	args := []string{WatchURL(ref), "--skip-download", "--print", "%(title)s"}
	if c.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", c.CookiesFromBrowser)
	}

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("fetch title: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	title := strings.TrimSpace(stdout.String())
	if title == "" {
		return "", fmt.Errorf("fetch title: yt-dlp printed nothing")
	}
	return title, nil
}
