package archiver

import (
	"regexp"
	"strings"
)

// Wikitext regions where markup is inert. Headings and timestamps inside
// them must never be interpreted.
var (
	commentPat  = regexp.MustCompile(`(?s)<!--(.*?)-->`)
	wikilinkPat = regexp.MustCompile(`\[\[([^\[\]]*?)\]\]`)

	disabledPats = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<nowiki\b[^>]*>.*?</nowiki>`),
		regexp.MustCompile(`(?is)<pre\b[^>]*>.*?</pre>`),
		regexp.MustCompile(`(?is)<source\b[^>]*>.*?</source>`),
		regexp.MustCompile(`(?is)<syntaxhighlight\b[^>]*>.*?</syntaxhighlight>`),
	}
)

const maskChar = '_'

// maskMatches replaces every match of re in text with a run of filler
// bytes of identical length, so that byte offsets into the buffer stay
// valid for later passes.
func maskMatches(text string, re *regexp.Regexp, filler byte) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(string(filler), len(m))
	})
}

// maskSpan overwrites text[start:end] with filler bytes.
func maskSpan(text string, start, end int, filler byte) string {
	return text[:start] + strings.Repeat(string(filler), end-start) + text[end:]
}

// maskDisabledRegions blanks out nowiki, pre, source and syntaxhighlight
// blocks. Comments are handled separately because the timestamp scanner
// recurses into them first.
func maskDisabledRegions(text string) string {
	for _, re := range disabledPats {
		text = maskMatches(text, re, maskChar)
	}
	return text
}
