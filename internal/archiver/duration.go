package archiver

import (
	"regexp"
	"strconv"
	"time"
)

// SizeUnit distinguishes the two cap units accepted by maxarchivesize.
type SizeUnit int

const (
	SizeBytes SizeUnit = iota
	SizeThreads
)

type ArchiveSize struct {
	Amount int64
	Unit   SizeUnit
}

var (
	durationPat = regexp.MustCompile(`^\s*(\d+)\s*([shdwy])\s*$`)
	sizePat     = regexp.MustCompile(`^\s*(\d+)\s*([BkKMT]?)\s*$`)
)

// Str2Time parses the shorthand duration notation used by the algo
// parameter: <amount><unit> with unit one of s, h, d, w, y. A year counts
// as 365.25 days.
func Str2Time(s string) (time.Duration, error) {
	m := durationPat.FindStringSubmatch(s)
	if m == nil {
		return 0, &MalformedConfigError{Param: "algo", Value: s, Reason: "expected <amount><s|h|d|w|y>"}
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, &MalformedConfigError{Param: "algo", Value: s, Reason: err.Error()}
	}
	switch m[2] {
	case "s":
		return time.Duration(n) * time.Second, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	case "w":
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	default: // y
		return time.Duration(float64(n) * 365.25 * 24 * float64(time.Hour)), nil
	}
}

// Str2Size parses the maxarchivesize notation: a number optionally
// followed by B (bytes), k/K (KiB), M (MiB) or T (threads).
func Str2Size(s string) (ArchiveSize, error) {
	m := sizePat.FindStringSubmatch(s)
	if m == nil {
		return ArchiveSize{}, &MalformedConfigError{Param: "maxarchivesize", Value: s, Reason: "expected <int>[BkKMT]"}
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return ArchiveSize{}, &MalformedConfigError{Param: "maxarchivesize", Value: s, Reason: err.Error()}
	}
	switch m[2] {
	case "", "B":
		return ArchiveSize{Amount: n, Unit: SizeBytes}, nil
	case "k", "K":
		return ArchiveSize{Amount: n * 1024, Unit: SizeBytes}, nil
	case "M":
		return ArchiveSize{Amount: n * 1024 * 1024, Unit: SizeBytes}, nil
	default: // T
		return ArchiveSize{Amount: n, Unit: SizeThreads}, nil
	}
}
