package vtt

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultMergeTolerance is the largest gap between two timing blocks that
// still counts as "adjacent" when merging repeated cues.
const DefaultMergeTolerance = 500 * time.Millisecond

// ParseError reports a malformed subtitle document, naming the offending line.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

var (
	// Timing lines look like "00:00:00.160 --> 00:00:02.350 align:start position:0%".
	// Cue settings after the end time are tolerated and ignored.
	timingRegex = regexp.MustCompile(`^([\d:.,]+)\s+-->\s+([\d:.,]+)(?:\s+.*)?$`)

	// Inline timestamps and voice/class spans, e.g. "<00:00:01.319><c> word</c>".
	tagRegex = regexp.MustCompile(`<[^>]*>`)
)

// ParseFile reads a WebVTT file and returns its cleaned cue list. See Parse.
func ParseFile(path string, mergeTolerance time.Duration) ([]Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, path, mergeTolerance)
}

// Parse reads a WebVTT document and returns its cues, time-ordered, with
// formatting tags stripped and consecutive duplicate cues merged. Auto-captions
// repeat the same line across several short timing blocks; without the merge
// pass alignment downstream would be dominated by that noise. name is used in
// error messages only.
func Parse(r io.Reader, name string, mergeTolerance time.Duration) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var cues []Cue
	lineNum := 0
	skipBlock := false

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}
		if lineNum == 1 && strings.HasPrefix(line, "WEBVTT") {
			continue
		}
		if strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") || strings.HasPrefix(line, "REGION") {
			// Skip the whole block up to the next blank line.
			skipBlock = true
			continue
		}
		if strings.HasPrefix(line, "Kind:") || strings.HasPrefix(line, "Language:") {
			continue
		}

		if !strings.Contains(line, "-->") {
			// Cue identifier line; the timing line follows.
			continue
		}

		matches := timingRegex.FindStringSubmatch(line)
		if matches == nil {
			return nil, &ParseError{Path: name, Line: lineNum, Msg: fmt.Sprintf("malformed timing line: %s", line)}
		}
		start, err := ParseTime(matches[1])
		if err != nil {
			return nil, &ParseError{Path: name, Line: lineNum, Msg: err.Error()}
		}
		end, err := ParseTime(matches[2])
		if err != nil {
			return nil, &ParseError{Path: name, Line: lineNum, Msg: err.Error()}
		}
		if end < start {
			return nil, &ParseError{Path: name, Line: lineNum, Msg: fmt.Sprintf("cue ends before it starts: %s", line)}
		}

		var textLines []string
		for scanner.Scan() {
			lineNum++
			textLine := strings.TrimSpace(scanner.Text())
			if textLine == "" {
				break
			}
			clean := html.UnescapeString(tagRegex.ReplaceAllString(textLine, ""))
			clean = strings.TrimSpace(clean)
			if clean != "" {
				textLines = append(textLines, clean)
			}
		}

		if len(textLines) > 0 {
			cues = append(cues, Cue{
				Start: start,
				End:   end,
				Text:  strings.Join(textLines, "\n"),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})

	return mergeDuplicates(cues, mergeTolerance), nil
}

// mergeDuplicates collapses runs of cues that carry the same normalized text
// at adjacent or overlapping times into one cue spanning min(start)..max(end).
func mergeDuplicates(cues []Cue, tolerance time.Duration) []Cue {
	if tolerance < 0 {
		tolerance = DefaultMergeTolerance
	}
	if len(cues) < 2 {
		return cues
	}

	merged := make([]Cue, 0, len(cues))
	merged = append(merged, cues[0])

	for _, cue := range cues[1:] {
		last := &merged[len(merged)-1]
		sameText := NormalizeText(cue.Text) == NormalizeText(last.Text)
		adjacent := cue.Start <= last.End+tolerance
		if sameText && adjacent {
			if cue.End > last.End {
				last.End = cue.End
			}
			continue
		}
		merged = append(merged, cue)
	}

	return merged
}
