// Package normalize cleans ranking titles for logs and display
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization (fullwidth ASCII and halfwidth kana fold here)
// 3 Remove control and format characters (ZWJ ZWNJ FEFF etc)
// 4 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			runes.Map(func(r rune) rune {
				// keep whitespace controls so step 4 can fold them
				if unicode.IsControl(r) && !unicode.IsSpace(r) {
					return -1
				}
				return r
			}),
		)
	},
}

// Title returns the display form of a ranking title
func Title(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return strings.Join(strings.FieldsFunc(ns, unicode.IsSpace), " ")
}

// Clip shortens s to at most n runes, appending an ellipsis when cut
func Clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "…"
		}
		i++
	}
	return s
}
