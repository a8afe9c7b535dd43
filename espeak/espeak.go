// Package espeak produces IPA pronunciation hints for the primary-language
// cues by shelling out to the espeak command. It is an optional aid: when
// espeak is missing or a line fails, the transcript renders without IPA.
package espeak

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"ytparallel/logging"
)

// Annotator generates IPA for one voice. The zero value is unusable; use New.
type Annotator struct {
	// Path is the espeak binary, normally just "espeak".
	Path string
	// Voice is passed as -v<voice>, e.g. "da" or "en-us".
	Voice string

	logger   *slog.Logger
	disabled bool
}

// New returns an Annotator for the given voice. If the espeak binary cannot
// be found the annotator is disabled rather than failing: transcripts must
// still render without it.
func New(path, voice string, logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if path == "" {
		path = "espeak"
	}
	a := &Annotator{Path: path, Voice: voice, logger: logger}
	if _, err := exec.LookPath(path); err != nil {
		logger.Warn("espeak not found; transcript will have no IPA",
			logging.String("path", path))
		a.disabled = true
	}
	return a
}

// Enabled reports whether the annotator can produce IPA at all.
func (a *Annotator) Enabled() bool { return !a.disabled }

// IPA returns the IPA rendering of text, or "" when annotation is disabled or
// espeak rejects the line. Per-line failures are logged once and never fatal.
func (a *Annotator) IPA(ctx context.Context, text string) string {
	if a.disabled || strings.TrimSpace(text) == "" {
		return ""
	}

	// -q keeps espeak from playing audio; --ipa=2 includes stress markers.
	cmd := exec.CommandContext(ctx, a.Path, "-v"+a.Voice, "-q", "--ipa=2", text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			a.disabled = true
		}
		a.logger.Warn("espeak failed for line",
			logging.String("voice", a.Voice),
			logging.String("stderr", strings.TrimSpace(stderr.String())),
			logging.Error(err),
		)
		return ""
	}

	return CleanOutput(stdout.String())
}

// CleanOutput normalizes espeak output: trims surrounding quotes and
// collapses the per-word line breaks espeak emits into single spaces.
func CleanOutput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `'"`)
	return strings.Join(strings.Fields(s), " ")
}

// VoiceFor derives the espeak voice from a subtitle language code when no
// explicit voice is configured.
func VoiceFor(configured, langBase string) string {
	if configured != "" {
		return configured
	}
	if langBase == "" {
		return "en"
	}
	return langBase
}
