package transcript

import (
	"path/filepath"
	"testing"
	"time"

	"ytparallel/align"
	"ytparallel/lang"
	"ytparallel/vtt"
)

func mustLang(t *testing.T, code string) lang.Language {
	t.Helper()
	l, err := lang.Parse(code)
	if err != nil {
		t.Fatalf("lang.Parse(%q): %v", code, err)
	}
	return l
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Gåtur i København — del 2!  ", "g-tur-i-k-benhavn-del-2"},
		{"___", "transcript"},
		{"", "transcript"},
		{"already-clean", "already-clean"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify_Truncates(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "word "
	}
	slug := Slugify(long)
	if len(slug) > 80 {
		t.Errorf("slug too long: %d chars", len(slug))
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("out", "Hej Verden", mustLang(t, "da"), mustLang(t, "en"))
	want := filepath.Join("out", "hej-verden.da-en.html")
	if got != want {
		t.Errorf("OutputPath = %q; want %q", got, want)
	}
}

func TestBuild(t *testing.T) {
	hej := vtt.Cue{Start: 0, End: 2 * time.Second, Text: "Hej"}
	hello := vtt.Cue{Start: 100 * time.Millisecond, End: 2 * time.Second, Text: "Hello"}
	world := vtt.Cue{Start: 5 * time.Second, End: 6 * time.Second, Text: "world"}

	pairs := []align.Pair{
		{Primary: &hej, Secondary: &hello},
		{Primary: nil, Secondary: &world},
	}

	doc := Build("Test Video", mustLang(t, "da"), mustLang(t, "en"), pairs)
	if len(doc.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(doc.Rows))
	}
	if doc.Rows[0].Index != 1 || doc.Rows[1].Index != 2 {
		t.Errorf("row indices wrong: %+v", doc.Rows)
	}
	if doc.Rows[0].Primary != "Hej" || doc.Rows[0].Secondary != "Hello" {
		t.Errorf("row 0 text wrong: %+v", doc.Rows[0])
	}
	if doc.Rows[0].Anchor != 0 {
		t.Errorf("row 0 anchor = %v, want 0", doc.Rows[0].Anchor)
	}
	if doc.Rows[1].Primary != "" || doc.Rows[1].Secondary != "world" {
		t.Errorf("row 1 should have empty primary: %+v", doc.Rows[1])
	}
	if doc.Rows[1].Timestamp() != "00:05" {
		t.Errorf("row 1 timestamp = %q", doc.Rows[1].Timestamp())
	}
}
