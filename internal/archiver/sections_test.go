package archiver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func reassemble(ex ExtractedSections) string {
	var b strings.Builder
	b.WriteString(ex.Header)
	for _, s := range ex.Sections {
		b.WriteString(s.Heading)
		b.WriteString(s.Body)
	}
	b.WriteString(ex.Footer)
	return b.String()
}

func TestExtractSections_Basic(t *testing.T) {
	text := "Intro line.\n\n== First ==\nbody one\n\n== Second ==\nbody two\n"
	ex := ExtractSections(text)

	assert.Equal(t, "Intro line.\n\n", ex.Header)
	require.Len(t, ex.Sections, 2)
	assert.Equal(t, "== First ==", ex.Sections[0].Heading)
	assert.Equal(t, "\nbody one\n\n", ex.Sections[0].Body)
	assert.Equal(t, "== Second ==", ex.Sections[1].Heading)
	assert.Equal(t, text, reassemble(ex))
}

func TestExtractSections_NoHeadings(t *testing.T) {
	text := "Just a lead paragraph.\nNothing else.\n"
	ex := ExtractSections(text)
	assert.Equal(t, text, ex.Header)
	assert.Empty(t, ex.Sections)
	assert.Empty(t, ex.Footer)
}

func TestExtractSections_Footer(t *testing.T) {
	text := "== Only ==\nbody\n\n[[Category:Archives]]\n[[de:Diskussion]]\n"
	ex := ExtractSections(text)

	require.Len(t, ex.Sections, 1)
	assert.Equal(t, "\nbody", ex.Sections[0].Body)
	assert.Equal(t, "\n\n[[Category:Archives]]\n[[de:Diskussion]]\n", ex.Footer)
	assert.Equal(t, text, reassemble(ex))
}

func TestExtractSections_FooterWithoutSections(t *testing.T) {
	text := "lead\n\n[[Category:Foo]]\n"
	ex := ExtractSections(text)
	assert.Equal(t, "lead", ex.Header)
	assert.Equal(t, "\n\n[[Category:Foo]]\n", ex.Footer)
}

func TestExtractSections_HeadingInCommentIgnored(t *testing.T) {
	text := "lead\n<!--\n== not a section ==\n-->\n== Real ==\nbody\n"
	ex := ExtractSections(text)

	require.Len(t, ex.Sections, 1)
	assert.Equal(t, "== Real ==", ex.Sections[0].Heading)
	assert.Contains(t, ex.Header, "not a section")
	assert.Equal(t, text, reassemble(ex))
}

func TestExtractSections_HeadingInNowikiIgnored(t *testing.T) {
	text := "lead\n<nowiki>\n== fake ==\n</nowiki>\n== Real ==\nbody\n"
	ex := ExtractSections(text)
	require.Len(t, ex.Sections, 1)
	assert.Equal(t, "== Real ==", ex.Sections[0].Heading)
}

func TestExtractSections_TrailingWhitespaceAfterHeading(t *testing.T) {
	text := "== Spaced == \t\nbody\n"
	ex := ExtractSections(text)
	require.Len(t, ex.Sections, 1)
	assert.Equal(t, "== Spaced == \t", ex.Sections[0].Heading)
	assert.Equal(t, text, reassemble(ex))
}

func TestHeadingTitle(t *testing.T) {
	assert.Equal(t, "Foo", HeadingTitle("== Foo =="))
	assert.Equal(t, "Bar", HeadingTitle("===Bar==="))
	assert.Equal(t, "Spaced", HeadingTitle("  == Spaced ==  "))
}

func TestExtractSections_RoundTripProperty(t *testing.T) {
	bodyLine := rapid.StringMatching(`[a-zA-Z0-9 ,.\[\]{}|']{0,40}`)
	title := rapid.StringMatching(`[a-zA-Z0-9 ]{1,20}`)

	rapid.Check(t, func(t *rapid.T) {
		var b strings.Builder
		for i, n := 0, rapid.IntRange(0, 3).Draw(t, "leadLines"); i < n; i++ {
			b.WriteString(bodyLine.Draw(t, "lead"))
			b.WriteByte('\n')
		}
		for i, n := 0, rapid.IntRange(0, 5).Draw(t, "sections"); i < n; i++ {
			b.WriteString("== ")
			b.WriteString(title.Draw(t, "title"))
			b.WriteString(" ==\n")
			for j, m := 0, rapid.IntRange(0, 4).Draw(t, "bodyLines"); j < m; j++ {
				b.WriteString(bodyLine.Draw(t, "body"))
				b.WriteByte('\n')
			}
		}
		text := b.String()
		if reassemble(ExtractSections(text)) != text {
			t.Fatalf("round trip mismatch for %q", text)
		}
	})
}
