// Package transcript assembles aligned cue pairs into the final parallel
// transcript document and renders it as a single self-contained HTML page.
package transcript

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"ytparallel/align"
	"ytparallel/lang"
	"ytparallel/vtt"
)

// Row is one rendered pair: primary text, optional IPA, secondary text.
// Either text may be empty when that side had no matching cue.
type Row struct {
	Index     int
	Anchor    time.Duration
	Primary   string
	IPA       string
	Secondary string
}

// Timestamp is the row's anchor formatted for display.
func (r Row) Timestamp() string {
	return vtt.FormatTimestamp(r.Anchor)
}

// Document is the full ordered transcript plus metadata. Built once per run
// and never mutated after construction (IPA is filled in during assembly).
type Document struct {
	Title         string
	PrimaryLang   lang.Language
	SecondaryLang lang.Language
	Rows          []Row
}

// Build converts aligned pairs into transcript rows in order.
func Build(title string, primary, secondary lang.Language, pairs []align.Pair) *Document {
	doc := &Document{
		Title:         title,
		PrimaryLang:   primary,
		SecondaryLang: secondary,
		Rows:          make([]Row, 0, len(pairs)),
	}
	for i, pair := range pairs {
		row := Row{Index: i + 1, Anchor: pair.Anchor()}
		if pair.Primary != nil {
			row.Primary = pair.Primary.Text
		}
		if pair.Secondary != nil {
			row.Secondary = pair.Secondary.Text
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify reduces a video title to a filesystem-friendly token.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugUnsafe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.Trim(slug[:80], "-")
	}
	if slug == "" {
		slug = "transcript"
	}
	return slug
}

// OutputPath derives the transcript filename from the video title and the two
// language codes, e.g. "some-video.da-en.html".
func OutputPath(dir, title string, primary, secondary lang.Language) string {
	name := Slugify(title) + "." + primary.Code + "-" + secondary.Code + ".html"
	return filepath.Join(dir, name)
}
