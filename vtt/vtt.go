package vtt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cue is one timed subtitle entry. Text keeps the cue's line breaks but has
// all WebVTT formatting tags stripped.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Track is the ordered cue sequence for a single language.
type Track struct {
	Lang string
	Cues []Cue
}

// Overlap returns how much of the two cues' time ranges coincide.
// Zero or negative means they do not overlap.
func (c Cue) Overlap(other Cue) time.Duration {
	start := c.Start
	if other.Start > start {
		start = other.Start
	}
	end := c.End
	if other.End < end {
		end = other.End
	}
	return end - start
}

// NormalizeText collapses all runs of whitespace (including newlines) into
// single spaces. Used to compare cue text across the repeated timing blocks
// that auto-captioning produces.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseTime parses a WebVTT timestamp like "00:01:02.350". The hours part is
// optional ("01:02.350" is one minute two seconds); a comma before the
// milliseconds is tolerated for SRT-flavored files.
func ParseTime(timeStr string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time format: %s", timeStr)
	}

	hours := 0
	hasHours := len(parts) == 3
	if hasHours {
		h, err := strconv.Atoi(parts[0])
		if err != nil || h < 0 {
			return 0, fmt.Errorf("invalid hours in %q", timeStr)
		}
		hours = h
		parts = parts[1:]
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 || (hasHours && minutes >= 60) {
		return 0, fmt.Errorf("invalid minutes in %q", timeStr)
	}

	secondsParts := strings.SplitN(strings.ReplaceAll(parts[1], ",", "."), ".", 2)
	seconds, err := strconv.Atoi(secondsParts[0])
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("invalid seconds in %q", timeStr)
	}

	milliseconds := 0
	if len(secondsParts) > 1 {
		// Pad or truncate to 3 digits
		msStr := secondsParts[1]
		if len(msStr) > 3 {
			msStr = msStr[:3]
		}
		for len(msStr) < 3 {
			msStr += "0"
		}
		milliseconds, err = strconv.Atoi(msStr)
		if err != nil {
			return 0, fmt.Errorf("invalid milliseconds in %q", timeStr)
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(milliseconds)*time.Millisecond, nil
}

// FormatTimestamp formats a duration as MM:SS (or H:MM:SS past an hour) for
// display next to transcript rows.
func FormatTimestamp(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
