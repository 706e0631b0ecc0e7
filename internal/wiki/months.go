package wiki

import (
	"fmt"
	"time"

	"archivebot/internal/archiver"
	"archivebot/internal/structures"
)

// monthTables holds the month names signatures use per content language,
// as {long, abbreviated} pairs. The abbreviation is what the wiki's
// MediaWiki installation renders, dots included where customary.
var monthTables = map[string][][2]string{
	"en": {
		{"January", "Jan"}, {"February", "Feb"}, {"March", "Mar"},
		{"April", "Apr"}, {"May", "May"}, {"June", "Jun"},
		{"July", "Jul"}, {"August", "Aug"}, {"September", "Sep"},
		{"October", "Oct"}, {"November", "Nov"}, {"December", "Dec"},
	},
	"de": {
		{"Januar", "Jan."}, {"Februar", "Feb."}, {"März", "Mär."},
		{"April", "Apr."}, {"Mai", "Mai"}, {"Juni", "Jun."},
		{"Juli", "Jul."}, {"August", "Aug."}, {"September", "Sep."},
		{"Oktober", "Okt."}, {"November", "Nov."}, {"Dezember", "Dez."},
	},
	"fr": {
		{"janvier", "jan"}, {"février", "fév"}, {"mars", "mar"},
		{"avril", "avr"}, {"mai", "mai"}, {"juin", "jui"},
		{"juillet", "juil"}, {"août", "aoû"}, {"septembre", "sep"},
		{"octobre", "oct"}, {"novembre", "nov"}, {"décembre", "déc"},
	},
	"es": {
		{"enero", "ene"}, {"febrero", "feb"}, {"marzo", "mar"},
		{"abril", "abr"}, {"mayo", "may"}, {"junio", "jun"},
		{"julio", "jul"}, {"agosto", "ago"}, {"septiembre", "sep"},
		{"octubre", "oct"}, {"noviembre", "nov"}, {"diciembre", "dic"},
	},
	"it": {
		{"gennaio", "gen"}, {"febbraio", "feb"}, {"marzo", "mar"},
		{"aprile", "apr"}, {"maggio", "mag"}, {"giugno", "giu"},
		{"luglio", "lug"}, {"agosto", "ago"}, {"settembre", "set"},
		{"ottobre", "ott"}, {"novembre", "nov"}, {"dicembre", "dic"},
	},
	"nl": {
		{"januari", "jan"}, {"februari", "feb"}, {"maart", "mrt"},
		{"april", "apr"}, {"mei", "mei"}, {"juni", "jun"},
		{"juli", "jul"}, {"augustus", "aug"}, {"september", "sep"},
		{"oktober", "okt"}, {"november", "nov"}, {"december", "dec"},
	},
	"pl": {
		{"stycznia", "sty"}, {"lutego", "lut"}, {"marca", "mar"},
		{"kwietnia", "kwi"}, {"maja", "maj"}, {"czerwca", "cze"},
		{"lipca", "lip"}, {"sierpnia", "sie"}, {"września", "wrz"},
		{"października", "paź"}, {"listopada", "lis"}, {"grudnia", "gru"},
	},
	"pt": {
		{"janeiro", "jan"}, {"fevereiro", "fev"}, {"março", "mar"},
		{"abril", "abr"}, {"maio", "mai"}, {"junho", "jun"},
		{"julho", "jul"}, {"agosto", "ago"}, {"setembro", "set"},
		{"outubro", "out"}, {"novembro", "nov"}, {"dezembro", "dez"},
	},
}

// digitTables maps content languages that sign with non-ASCII digit
// glyphs to their normalization tables.
var digitTables = map[string]map[rune]rune{
	"ar": {
		'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
		'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
	},
	"fa": {
		'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
		'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	},
}

// MonthNames returns the twelve month name pairs for a language code.
func MonthNames(lang string) ([][2]string, error) {
	table, ok := monthTables[lang]
	if !ok {
		return nil, fmt.Errorf("no month name table for language %q", lang)
	}
	return table, nil
}

// NewTimeStripper builds a TimeStripper from the wiki settings in conf.
func NewTimeStripper(conf *structures.Config) (*archiver.TimeStripper, error) {
	months, err := MonthNames(conf.Wiki.Lang)
	if err != nil {
		return nil, err
	}
	tz := conf.Wiki.Timezone
	if tz == "" {
		tz = "UTC"
	}
	return archiver.NewTimeStripper(archiver.TimeStripperConfig{
		MonthNames: months,
		Timezone:   tz,
		UTCOffset:  time.Duration(conf.Wiki.UTCOffset) * time.Minute,
		DigitMap:   digitTables[conf.Wiki.Lang],
	})
}
