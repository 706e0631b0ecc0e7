package archiver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// timestampGapLimit bounds the distance (in bytes) allowed between
// neighbouring fields of a candidate timestamp. Unrelated numbers spread
// over a sentence must not be assembled into a fake date.
const timestampGapLimit = 10

// TimeStripperConfig carries the locale tables the stripper needs. It is
// immutable after construction; multi-language fixtures just build several
// strippers.
type TimeStripperConfig struct {
	// MonthNames holds twelve {long, abbreviated} pairs in the wiki's
	// content language.
	MonthNames [][2]string
	// Timezone is the abbreviation signatures carry, e.g. "UTC" or "CET".
	Timezone string
	// UTCOffset is the fixed offset behind Timezone.
	UTCOffset time.Duration
	// DigitMap maps localized digit glyphs to their ASCII equivalents.
	// May be nil for Latin-digit wikis.
	DigitMap map[rune]rune
}

// TimeStripper locates and parses a signature timestamp embedded anywhere
// in a short wikitext fragment. Absence of a timestamp is a normal
// outcome, not an error.
type TimeStripper struct {
	cfg      TimeStripperConfig
	monthNum map[string]int
	loc      *time.Location

	patTime  *regexp.Regexp
	patTZ    *regexp.Regexp
	patYear  *regexp.Regexp
	patMonth *regexp.Regexp
	patDay   *regexp.Regexp
}

func NewTimeStripper(cfg TimeStripperConfig) (*TimeStripper, error) {
	if len(cfg.MonthNames) != 12 {
		return nil, fmt.Errorf("timestripper: want 12 month name pairs, got %d", len(cfg.MonthNames))
	}
	if cfg.Timezone == "" {
		return nil, fmt.Errorf("timestripper: timezone abbreviation is empty")
	}

	monthNum := make(map[string]int)
	var names []string
	for i, pair := range cfg.MonthNames {
		for _, name := range pair {
			if name == "" {
				continue
			}
			monthNum[monthKey(name)] = i + 1
			names = append(names, name)
		}
	}
	// Longer alternatives first so "January" is not consumed as "Jan".
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	alts := make([]string, len(names))
	for i, name := range names {
		alts[i] = monthAlt(name)
	}

	return &TimeStripper{
		cfg:      cfg,
		monthNum: monthNum,
		loc:      time.FixedZone(cfg.Timezone, int(cfg.UTCOffset.Seconds())),
		patTime:  regexp.MustCompile(`\b([0-2]?\d):([0-5]\d)\b`),
		patTZ:    regexp.MustCompile(`\(` + regexp.QuoteMeta(cfg.Timezone) + `\)`),
		patYear:  regexp.MustCompile(`\b(\d{4})\b`),
		patMonth: regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)\.?`),
		patDay:   regexp.MustCompile(`\b([0-3]?\d)\b\.?`),
	}, nil
}

func monthKey(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

// monthAlt quotes a month name for the alternation, anchored on word
// boundaries where its edges are ASCII letters so that fragments of
// longer words ("May" inside "Maybe") cannot match. Edges that are dots
// or non-ASCII letters get no anchor; \b is ASCII-only in Go regexps.
func monthAlt(name string) string {
	alt := regexp.QuoteMeta(name)
	if isASCIILetter(name[0]) {
		alt = `\b` + alt
	}
	if isASCIILetter(name[len(name)-1]) {
		alt += `\b`
	}
	return alt
}

func isASCIILetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// MonthName returns the configured long and abbreviated names for m.
func (t *TimeStripper) MonthName(m time.Month) (long, short string) {
	pair := t.cfg.MonthNames[int(m)-1]
	return pair[0], pair[1]
}

// Timezone returns the configured timezone abbreviation.
func (t *TimeStripper) Timezone() string {
	return t.cfg.Timezone
}

// TimestampFromText finds the most recent well-formed timestamp in text
// and returns it with the wiki's fixed UTC offset attached. Timestamps
// nested inside comments and wikilinks count too; the newest candidate at
// any depth wins.
func (t *TimeStripper) TimestampFromText(text string) (time.Time, bool) {
	var best time.Time
	found := false
	consider := func(ts time.Time, ok bool) {
		if ok && (!found || ts.After(best)) {
			best, found = ts, true
		}
	}

	for _, re := range []*regexp.Regexp{commentPat, wikilinkPat} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			consider(t.TimestampFromText(text[m[2]:m[3]]))
		}
		text = maskMatches(text, re, maskChar)
	}

	consider(t.scan(text))
	return best, found
}

type tsField struct {
	start, end int
	val        string
}

// scan runs the field-by-field extraction over a fragment with comments
// and wikilinks already masked out. Each field pattern takes the rightmost
// match and the matched span is overwritten with placeholders so later
// fields cannot re-match consumed text and offsets stay comparable.
func (t *TimeStripper) scan(text string) (time.Time, bool) {
	buf := maskDisabledRegions(text)
	buf = t.normalizeDigits(buf)

	find := func(re *regexp.Regexp) (tsField, bool) {
		ms := re.FindAllStringIndex(buf, -1)
		if len(ms) == 0 {
			return tsField{}, false
		}
		m := ms[len(ms)-1]
		f := tsField{start: m[0], end: m[1], val: buf[m[0]:m[1]]}
		buf = maskSpan(buf, m[0], m[1], '@')
		return f, true
	}

	clock, ok := find(t.patTime)
	if !ok {
		return time.Time{}, false
	}
	tz, ok := find(t.patTZ)
	if !ok {
		return time.Time{}, false
	}
	year, ok := find(t.patYear)
	if !ok {
		return time.Time{}, false
	}
	month, ok := find(t.patMonth)
	if !ok {
		return time.Time{}, false
	}
	day, ok := find(t.patDay)
	if !ok {
		return time.Time{}, false
	}

	if !validPositions([]tsField{day, month, year, clock}, tz) {
		return time.Time{}, false
	}

	hh, mm, ok := splitClock(clock.val)
	if !ok {
		return time.Time{}, false
	}
	y, err := strconv.Atoi(year.val)
	if err != nil {
		return time.Time{}, false
	}
	mo, ok := t.monthNum[monthKey(month.val)]
	if !ok {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(strings.TrimSuffix(day.val, "."))
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, false
	}

	ts := time.Date(y, time.Month(mo), d, hh, mm, 0, 0, t.loc)
	// time.Date normalizes overflow; a "30 February" must not survive.
	if ts.Year() != y || ts.Month() != time.Month(mo) || ts.Day() != d {
		return time.Time{}, false
	}
	return ts, true
}

// validPositions checks the ordering invariants over the original offsets:
// adjacent date/time fields may not be further apart than the gap limit,
// and the timezone marker may not sit between them.
func validPositions(dates []tsField, tz tsField) bool {
	sort.Slice(dates, func(i, j int) bool { return dates[i].start < dates[j].start })
	for i := 1; i < len(dates); i++ {
		if dates[i].start-dates[i-1].end > timestampGapLimit {
			return false
		}
	}
	if tz.start > dates[0].start && tz.start < dates[len(dates)-1].start {
		return false
	}
	return true
}

func splitClock(val string) (hh, mm int, ok bool) {
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh > 23 {
		return 0, 0, false
	}
	mm, err = strconv.Atoi(parts[1])
	if err != nil || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}

func (t *TimeStripper) normalizeDigits(text string) string {
	if len(t.cfg.DigitMap) == 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		if repl, ok := t.cfg.DigitMap[r]; ok {
			return repl
		}
		return r
	}, text)
}
