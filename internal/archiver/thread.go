package archiver

import (
	"fmt"
	"strings"
	"time"
)

// threadOverhead accounts for the heading markup a serialized thread
// carries around its title.
const threadOverhead = 12

// DiscussionThread is one section of a discussion page, treated as an
// archivable unit. Timestamp tracks the newest signature found anywhere in
// the content; the newest reply decides archivability.
type DiscussionThread struct {
	Title     string
	Content   string
	Timestamp time.Time
	HasTime   bool

	stripper *TimeStripper
}

func NewDiscussionThread(title string, stripper *TimeStripper) *DiscussionThread {
	return &DiscussionThread{Title: title, stripper: stripper}
}

// FeedLine appends one line of body text. Blank lines before any content
// are dropped; every line is scanned for a signature timestamp and the
// maximum is kept.
func (t *DiscussionThread) FeedLine(line string) {
	line = strings.TrimRight(line, "\n")
	if t.Content == "" && strings.TrimSpace(line) == "" {
		return
	}
	t.Content += line + "\n"

	if ts, ok := t.stripper.TimestampFromText(line); ok {
		if !t.HasTime || ts.After(t.Timestamp) {
			t.Timestamp = ts
			t.HasTime = true
		}
	}
}

// Size returns the byte count the thread will occupy on an archive page.
func (t *DiscussionThread) Size() int {
	return len(t.Title) + len(t.Content) + threadOverhead
}

// ShouldBeArchived evaluates the archiver's retention rule against the
// thread. It returns a human-readable reason when the thread is eligible,
// or the empty string. Threads without a discoverable timestamp are never
// archived by age.
func (t *DiscussionThread) ShouldBeArchived(a *PageArchiver) string {
	if !t.HasTime {
		return ""
	}
	if a.now.Sub(t.Timestamp) > a.maxAge {
		return fmt.Sprintf("older than %s", a.algoArg)
	}
	return ""
}

func (t *DiscussionThread) ToText() string {
	return "== " + t.Title + " ==\n\n" + t.Content
}
