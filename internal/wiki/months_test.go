package wiki

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivebot/internal/structures"
)

func TestMonthNames_KnownLanguages(t *testing.T) {
	for lang := range monthTables {
		months, err := MonthNames(lang)
		require.NoError(t, err, lang)
		assert.Len(t, months, 12, lang)
		for _, pair := range months {
			assert.NotEmpty(t, pair[0], lang)
			assert.NotEmpty(t, pair[1], lang)
		}
	}
}

func TestMonthNames_Unknown(t *testing.T) {
	_, err := MonthNames("tlh")
	assert.Error(t, err)
}

func TestNewTimeStripper_DefaultTimezone(t *testing.T) {
	conf := &structures.Config{Wiki: structures.WikiConfig{Lang: "en"}}
	st, err := NewTimeStripper(conf)
	require.NoError(t, err)

	ts, ok := st.TimestampFromText("hi. 12:35, 10 March 2010 (UTC)")
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2010, time.March, 10, 12, 35, 0, 0, time.UTC)))
}

func TestNewTimeStripper_Offset(t *testing.T) {
	conf := &structures.Config{Wiki: structures.WikiConfig{
		Lang:      "de",
		Timezone:  "CET",
		UTCOffset: 60,
	}}
	st, err := NewTimeStripper(conf)
	require.NoError(t, err)

	ts, ok := st.TimestampFromText("hallo. 12:35, 10. Jan. 2010 (CET)")
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2010, time.January, 10, 11, 35, 0, 0, time.UTC)))
}

func TestNewTimeStripper_UnknownLanguage(t *testing.T) {
	conf := &structures.Config{Wiki: structures.WikiConfig{Lang: "xx"}}
	_, err := NewTimeStripper(conf)
	assert.Error(t, err)
}
