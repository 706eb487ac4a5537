// Package normalize turns Data API records into the canonical media shapes
// Pipeline for display text
// 1 HTML entity unescape (the Data API escapes titles)
// 2 UTF-8 repair drop invalid bytes
// 3 Unicode NFC
// 4 Remove format runes (ZWJ ZWNJ BOM) and stray controls
// 5 Collapse whitespace, keeping line breaks and paragraph gaps for descriptions
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
			runes.Remove(runes.Predicate(isStrayControl)),
		)
	},
}

func isStrayControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t'
}

// Text cleans multi-line display text such as descriptions
func Text(s string) string { return clean(s, true) }

// Line cleans single-line display text such as titles
func Line(s string) string { return clean(s, false) }

func clean(s string, keepNL bool) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return collapseSpaces(ns, keepNL)
}

// collapseSpaces turns whitespace runs into one space; with keepNL a run holding
// line breaks becomes one newline, or a blank line when it held two or more
func collapseSpaces(s string, keepNL bool) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS, nl := false, 0
	flush := func() {
		if !inWS {
			return
		}
		if nl > 0 && keepNL {
			b.WriteString("\n\n"[:min(nl, 2)])
		} else {
			b.WriteByte(' ')
		}
		inWS, nl = false, 0
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' {
				nl++
			}
			continue
		}
		if b.Len() > 0 {
			flush()
		} else {
			inWS, nl = false, 0
		}
		b.WriteRune(r)
	}
	return b.String()
}
