package archiver

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var enMonths = [][2]string{
	{"January", "Jan"}, {"February", "Feb"}, {"March", "Mar"},
	{"April", "Apr"}, {"May", "May"}, {"June", "Jun"},
	{"July", "Jul"}, {"August", "Aug"}, {"September", "Sep"},
	{"October", "Oct"}, {"November", "Nov"}, {"December", "Dec"},
}

func newUTCStripper(t *testing.T) *TimeStripper {
	t.Helper()
	ts, err := NewTimeStripper(TimeStripperConfig{
		MonthNames: enMonths,
		Timezone:   "UTC",
	})
	require.NoError(t, err)
	return ts
}

func TestNewTimeStripper_Validation(t *testing.T) {
	_, err := NewTimeStripper(TimeStripperConfig{MonthNames: enMonths[:3], Timezone: "UTC"})
	assert.Error(t, err)

	_, err = NewTimeStripper(TimeStripperConfig{MonthNames: enMonths})
	assert.Error(t, err)
}

func TestTimestampFromText_Simple(t *testing.T) {
	st := newUTCStripper(t)
	ts, ok := st.TimestampFromText("Some remark. [[User:X|X]] 12:35, 10 March 2010 (UTC)")
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2010, time.March, 10, 12, 35, 0, 0, time.UTC)))
}

func TestTimestampFromText_NoTimestamp(t *testing.T) {
	st := newUTCStripper(t)
	_, ok := st.TimestampFromText("just some prose without any signature")
	assert.False(t, ok)
}

func TestTimestampFromText_NewestWins(t *testing.T) {
	st := newUTCStripper(t)
	text := "First reply 09:00, 1 June 2009 (UTC)\nSecond reply 10:30, 2 July 2011 (UTC)"
	ts, ok := st.TimestampFromText(text)
	require.True(t, ok)
	assert.Equal(t, 2011, ts.Year())
}

func TestTimestampFromText_InsideComment(t *testing.T) {
	st := newUTCStripper(t)
	ts, ok := st.TimestampFromText("text <!-- hidden 12:35, 10 March 2010 (UTC) --> more")
	require.True(t, ok)
	assert.Equal(t, time.March, ts.Month())
}

func TestTimestampFromText_InsideWikilink(t *testing.T) {
	st := newUTCStripper(t)
	ts, ok := st.TimestampFromText("see [[Talk:Foo/12:35, 10 March 2010 (UTC)]]")
	require.True(t, ok)
	assert.Equal(t, 2010, ts.Year())
}

func TestTimestampFromText_NowikiDisabled(t *testing.T) {
	st := newUTCStripper(t)
	_, ok := st.TimestampFromText("<nowiki>12:35, 10 March 2010 (UTC)</nowiki>")
	assert.False(t, ok)
}

func TestTimestampFromText_GapLimit(t *testing.T) {
	st := newUTCStripper(t)
	// Clock and date fields separated by more than the allowed gap must
	// not be stitched together into a timestamp.
	_, ok := st.TimestampFromText("12:35 and much later that day, 10 March 2010 (UTC)")
	assert.False(t, ok)
}

func TestTimestampFromText_TimezoneBetweenFields(t *testing.T) {
	st := newUTCStripper(t)
	_, ok := st.TimestampFromText("12:35 (UTC) 10 March 2010")
	assert.False(t, ok)
}

func TestTimestampFromText_ImpossibleDate(t *testing.T) {
	st := newUTCStripper(t)
	_, ok := st.TimestampFromText("12:35, 30 February 2010 (UTC)")
	assert.False(t, ok)
}

func TestTimestampFromText_InvalidHour(t *testing.T) {
	st := newUTCStripper(t)
	_, ok := st.TimestampFromText("25:35, 10 March 2010 (UTC)")
	assert.False(t, ok)
}

func TestTimestampFromText_MonthInsideWordIgnored(t *testing.T) {
	st := newUTCStripper(t)
	// "May" embedded in a longer word must not combine with nearby
	// numbers into a timestamp.
	_, ok := st.TimestampFromText("10 Maybe 2010 12:35 (UTC)")
	assert.False(t, ok)
}

func TestTimestampFromText_MonthCaseInsensitive(t *testing.T) {
	st := newUTCStripper(t)
	ts, ok := st.TimestampFromText("12:35, 10 march 2010 (UTC)")
	require.True(t, ok)
	assert.Equal(t, time.March, ts.Month())
}

func TestTimestampFromText_AbbreviatedMonthWithOffset(t *testing.T) {
	months := make([][2]string, 12)
	copy(months, enMonths)
	months[2] = [2]string{"März", "Mär."}
	st, err := NewTimeStripper(TimeStripperConfig{
		MonthNames: months,
		Timezone:   "CET",
		UTCOffset:  time.Hour,
	})
	require.NoError(t, err)

	ts, ok := st.TimestampFromText("12:35, 10 Mär. 2010 (CET)")
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2010, time.March, 10, 11, 35, 0, 0, time.UTC)))
}

func TestTimestampFromText_LocalizedDigits(t *testing.T) {
	st, err := NewTimeStripper(TimeStripperConfig{
		MonthNames: enMonths,
		Timezone:   "UTC",
		DigitMap: map[rune]rune{
			'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
			'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
		},
	})
	require.NoError(t, err)

	ts, ok := st.TimestampFromText("١٢:٣٥, ١٠ March ٢٠١٠ (UTC)")
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2010, time.March, 10, 12, 35, 0, 0, time.UTC)))
}

func TestTimestampFromText_RoundTrip(t *testing.T) {
	st := newUTCStripper(t)
	rapid.Check(t, func(t *rapid.T) {
		y := rapid.IntRange(1990, 2035).Draw(t, "year")
		mo := rapid.IntRange(1, 12).Draw(t, "month")
		d := rapid.IntRange(1, 28).Draw(t, "day")
		hh := rapid.IntRange(0, 23).Draw(t, "hour")
		mm := rapid.IntRange(0, 59).Draw(t, "minute")

		text := fmt.Sprintf("%02d:%02d, %d %s %d (UTC)", hh, mm, d, enMonths[mo-1][0], y)
		ts, ok := st.TimestampFromText("reply text " + text)
		if !ok {
			t.Fatalf("no timestamp found in %q", text)
		}
		want := time.Date(y, time.Month(mo), d, hh, mm, 0, 0, time.UTC)
		if !ts.Equal(want) {
			t.Fatalf("got %v, want %v from %q", ts, want, text)
		}
	})
}
