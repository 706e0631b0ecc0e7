package archiver

import (
	"regexp"
	"strings"
)

// Section is one heading plus everything up to the next heading. Heading
// keeps the raw markup line (without its line break) so that
// Header + Σ(Heading+Body) + Footer reproduces the input byte for byte.
type Section struct {
	Heading string
	Body    string
}

type ExtractedSections struct {
	Header   string
	Sections []Section
	Footer   string
}

var (
	headingPat = regexp.MustCompile(`(?m)^(={1,6})[^=\n][^\n]*?(={1,6})[ \t]*$`)
	// Trailing category and interlanguage links conventionally belong to
	// the whole page, not to the last thread.
	footerPat = regexp.MustCompile(`(\s*\[\[(?:[Cc]ategory:[^\[\]\n]+|[a-z]{2,3}(?:-[a-z\-]+)?:[^\[\]\n]+)\]\])+\s*$`)
)

// ExtractSections splits a wikitext document into leading header text, an
// ordered list of sections and a trailing footer. Headings inside
// comments, nowiki or pre blocks are not section boundaries.
func ExtractSections(text string) ExtractedSections {
	masked := maskDisabledRegions(maskMatches(text, commentPat, maskChar))

	spans := headingPat.FindAllStringIndex(masked, -1)
	if len(spans) == 0 {
		header, footer := splitFooter(text)
		return ExtractedSections{Header: header, Footer: footer}
	}

	result := ExtractedSections{Header: text[:spans[0][0]]}
	for i, span := range spans {
		end := len(text)
		if i+1 < len(spans) {
			end = spans[i+1][0]
		}
		result.Sections = append(result.Sections, Section{
			Heading: text[span[0]:span[1]],
			Body:    text[span[1]:end],
		})
	}

	last := &result.Sections[len(result.Sections)-1]
	last.Body, result.Footer = splitFooter(last.Body)
	return result
}

// splitFooter strips trailing category/interwiki markup (with surrounding
// whitespace) off the end of body and returns both halves.
func splitFooter(body string) (string, string) {
	loc := footerPat.FindStringIndex(body)
	if loc == nil {
		return body, ""
	}
	return body[:loc[0]], body[loc[0]:]
}

// HeadingTitle extracts the display title from a raw heading line,
// stripping the equals-sign fences and surrounding whitespace.
func HeadingTitle(heading string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(heading), "="))
}
