// Package lang maps subtitle language codes to display names. yt-dlp accepts
// both plain ISO 639-1 codes ("da") and translated-track codes ("en-US",
// "da-DK"), so lookups go through golang.org/x/text's BCP 47 parser with a
// small table for the names we care about rendering.
package lang

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	code    string // ISO 639-1
	display string
}

var names = []entry{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"zh", "Chinese"},
	{"ru", "Russian"},
	{"ar", "Arabic"},
	{"hi", "Hindi"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"sv", "Swedish"},
	{"da", "Danish"},
	{"no", "Norwegian"},
	{"fi", "Finnish"},
	{"tr", "Turkish"},
	{"uk", "Ukrainian"},
	{"vi", "Vietnamese"},
	{"th", "Thai"},
	{"id", "Indonesian"},
	{"cs", "Czech"},
	{"el", "Greek"},
	{"he", "Hebrew"},
	{"hu", "Hungarian"},
	{"ro", "Romanian"},
}

var byCode map[string]string

func init() {
	byCode = make(map[string]string, len(names))
	for _, e := range names {
		byCode[e.code] = e.display
	}
}

// Language is a validated subtitle language identifier.
type Language struct {
	// Code is the identifier exactly as passed to the downloader
	// (e.g. "da", "en-US").
	Code string
	// Base is the lowercased primary subtag ("da", "en"). Used for espeak
	// voice selection and display-name lookup.
	Base string
}

// Parse validates a language code. Unknown but syntactically valid BCP 47
// codes are accepted; yt-dlp is the authority on which tracks actually exist.
func Parse(code string) (Language, error) {
	code = strings.TrimSpace(code)
	tag, err := language.Parse(code)
	if err != nil {
		var valueErr language.ValueError
		if !errors.As(err, &valueErr) {
			return Language{}, err
		}
	}
	base, _ := tag.Base()
	return Language{Code: code, Base: base.String()}, nil
}

// DisplayName returns a human-readable name for the language, falling back to
// title-casing the raw code when the table has no entry.
func (l Language) DisplayName() string {
	if name, ok := byCode[l.Base]; ok {
		return name
	}
	if l.Code == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(l.Code)
}

func (l Language) String() string { return l.Code }
