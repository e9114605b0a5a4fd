package manifest

import (
	"regexp"
	"strings"
)

// referencePattern matches url(...) references with an optional trailing
// /*preload:TAG_LIST*/ annotation.
//
//	match[1] = url token
//	match[2] = optional tag list
var referencePattern = regexp.MustCompile(`(?i)url\(\s*['"]?(.*?)['"]?\s*\)(?:\s*/\*\s*preload:([^*]*)\*/)?`)

// Extractor walks stylesheet text and yields image references in document
// order. Each Extractor owns its cursor, so independent scans never
// interfere with each other.
type Extractor struct {
	src string
	pos int
}

// NewExtractor creates an extractor positioned at the start of src.
func NewExtractor(src string) *Extractor {
	return &Extractor{src: src}
}

// Next returns the next reference after the cursor. The second result is
// false once the text holds no further match.
func (e *Extractor) Next() (Match, bool) {
	if e.pos > len(e.src) {
		return Match{}, false
	}

	loc := referencePattern.FindStringSubmatchIndex(e.src[e.pos:])
	if loc == nil {
		e.pos = len(e.src) + 1
		return Match{}, false
	}

	m := Match{
		URL:    strings.TrimSpace(e.src[e.pos+loc[2] : e.pos+loc[3]]),
		Offset: e.pos + loc[0],
	}
	if loc[4] >= 0 {
		tags := e.src[e.pos+loc[4] : e.pos+loc[5]]
		m.Tags = &tags
	}

	e.pos += loc[1]
	return m, true
}

// Reset moves the cursor back to the start of the text.
func (e *Extractor) Reset() {
	e.pos = 0
}

// ExtractAll returns every reference in src.
func ExtractAll(src string) []Match {
	var matches []Match
	ex := NewExtractor(src)
	for {
		m, ok := ex.Next()
		if !ok {
			return matches
		}
		matches = append(matches, m)
	}
}

// parseTags splits a raw tag list on commas. Surrounding whitespace and
// empty items are dropped; a nil list yields an empty, non-nil slice.
func parseTags(raw *string) []string {
	tags := []string{}
	if raw == nil {
		return tags
	}
	for _, tag := range strings.Split(*raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
