package vtt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustParse(t *testing.T, doc string) []Cue {
	t.Helper()
	cues, err := Parse(strings.NewReader(doc), "test.vtt", DefaultMergeTolerance)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return cues
}

func TestParse_BasicDocument(t *testing.T) {
	doc := `WEBVTT
Kind: captions
Language: da

00:00:00.160 --> 00:00:02.350 align:start position:0%
Hej <c.colorE5E5E5>verden</c>

00:00:02.350 --> 00:00:04.000
Det g&amp;r godt
i dag
`
	cues := mustParse(t, doc)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d: %+v", len(cues), cues)
	}
	if cues[0].Text != "Hej verden" {
		t.Errorf("tags not stripped: %q", cues[0].Text)
	}
	if cues[0].Start != 160*time.Millisecond || cues[0].End != 2350*time.Millisecond {
		t.Errorf("wrong timing: %v -> %v", cues[0].Start, cues[0].End)
	}
	if cues[1].Text != "Det g&r godt\ni dag" {
		t.Errorf("entities or line breaks wrong: %q", cues[1].Text)
	}
}

func TestParse_SkipsNoteAndStyleBlocks(t *testing.T) {
	doc := `WEBVTT

NOTE this block
spans two lines

STYLE
::cue { color: red }

00:00:01.000 --> 00:00:02.000
Hello
`
	cues := mustParse(t, doc)
	if len(cues) != 1 || cues[0].Text != "Hello" {
		t.Fatalf("expected single Hello cue, got %+v", cues)
	}
}

func TestParse_CueIdentifiersIgnored(t *testing.T) {
	doc := `WEBVTT

intro-cue-1
00:00:01.000 --> 00:00:02.000
Hello
`
	cues := mustParse(t, doc)
	if len(cues) != 1 || cues[0].Text != "Hello" {
		t.Fatalf("expected single Hello cue, got %+v", cues)
	}
}

func TestParse_MergesRepeatedCues(t *testing.T) {
	doc := `WEBVTT

00:00:00.000 --> 00:00:01.000
Hej

00:00:01.000 --> 00:00:02.000
Hej

00:00:02.000 --> 00:00:03.000
Hej
`
	cues := mustParse(t, doc)
	if len(cues) != 1 {
		t.Fatalf("expected one merged cue, got %d: %+v", len(cues), cues)
	}
	if cues[0].Start != 0 || cues[0].End != 3*time.Second {
		t.Errorf("merged cue should span 0s-3s, got %v -> %v", cues[0].Start, cues[0].End)
	}
}

func TestParse_MergeRespectsTolerance(t *testing.T) {
	doc := `WEBVTT

00:00:00.000 --> 00:00:01.000
Hej

00:00:05.000 --> 00:00:06.000
Hej
`
	cues := mustParse(t, doc)
	if len(cues) != 2 {
		t.Fatalf("cues far apart must not merge, got %d", len(cues))
	}
}

func TestParse_MergeNormalizesWhitespace(t *testing.T) {
	doc := `WEBVTT

00:00:00.000 --> 00:00:01.000
Hej  verden

00:00:01.200 --> 00:00:02.000
Hej verden
`
	cues := mustParse(t, doc)
	if len(cues) != 1 {
		t.Fatalf("whitespace-equivalent cues must merge, got %d", len(cues))
	}
}

func TestParse_OutputOrderedNoAdjacentDuplicates(t *testing.T) {
	// Deliberately out of order; auto-caption files occasionally are.
	doc := `WEBVTT

00:00:05.000 --> 00:00:06.000
three

00:00:00.000 --> 00:00:01.000
one

00:00:02.000 --> 00:00:03.000
two
`
	cues := mustParse(t, doc)
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	for i := 1; i < len(cues); i++ {
		if cues[i].Start < cues[i-1].Start {
			t.Errorf("cues not ordered at %d: %v after %v", i, cues[i].Start, cues[i-1].Start)
		}
		if NormalizeText(cues[i].Text) == NormalizeText(cues[i-1].Text) {
			t.Errorf("adjacent duplicate text survived at %d: %q", i, cues[i].Text)
		}
	}
}

func TestParse_MalformedTimestamp(t *testing.T) {
	doc := `WEBVTT

00:00:bad.000 --> 00:00:02.000
Hi
`
	_, err := Parse(strings.NewReader(doc), "broken.vtt", DefaultMergeTolerance)
	if err == nil {
		t.Fatal("expected ParseError, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Path != "broken.vtt" {
		t.Errorf("wrong path: %q", parseErr.Path)
	}
	if parseErr.Line != 3 {
		t.Errorf("wrong line: %d, want 3", parseErr.Line)
	}
}

func TestParse_EndBeforeStart(t *testing.T) {
	doc := `WEBVTT

00:00:05.000 --> 00:00:02.000
Hi
`
	_, err := Parse(strings.NewReader(doc), "broken.vtt", DefaultMergeTolerance)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cues := mustParse(t, "WEBVTT\n")
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(cues))
	}
}

func TestParse_DropsEmptyTextCues(t *testing.T) {
	doc := `WEBVTT

00:00:01.000 --> 00:00:02.000
<c></c>

00:00:02.000 --> 00:00:03.000
Hello
`
	cues := mustParse(t, doc)
	if len(cues) != 1 || cues[0].Text != "Hello" {
		t.Fatalf("tag-only cue should be dropped, got %+v", cues)
	}
}
