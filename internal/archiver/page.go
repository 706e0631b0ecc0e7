package archiver

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// PageClient is the wiki collaborator the core talks to. Implementations
// do the HTTP work; the core stays I/O-free in tests.
type PageClient interface {
	GetPageText(ctx context.Context, title string) (string, error)
	SavePage(ctx context.Context, title, text, summary string) error
	PageExists(ctx context.Context, title string) (bool, error)
}

// DiscussionPage is a talk page decomposed into threads. A source page
// spawns archive DiscussionPage instances lazily; those are append-only
// within one run.
type DiscussionPage struct {
	Title   string
	Header  string
	Footer  string
	Threads []*DiscussionThread
	Full    bool

	client        PageClient
	stripper      *TimeStripper
	exists        bool
	archivedCount int
}

func NewDiscussionPage(title string, client PageClient, stripper *TimeStripper) *DiscussionPage {
	return &DiscussionPage{Title: title, client: client, stripper: stripper}
}

// Load fetches the page text and rebuilds the thread list. A missing page
// is not an error: the page simply starts empty (new archive pages get
// defaultHeader as their header).
func (p *DiscussionPage) Load(ctx context.Context, defaultHeader string) error {
	text, err := p.client.GetPageText(ctx, p.Title)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			p.exists = false
			p.Header = defaultHeader
			p.Footer = ""
			p.Threads = nil
			return nil
		}
		return err
	}
	p.exists = true

	ex := ExtractSections(text)
	p.Header = ex.Header
	p.Footer = ex.Footer
	p.Threads = p.Threads[:0]
	for _, sec := range ex.Sections {
		thread := NewDiscussionThread(HeadingTitle(sec.Heading), p.stripper)
		// A body ending in "\n" would split into a trailing empty line;
		// feeding it back would grow every thread by one blank line per
		// load/save cycle.
		for _, line := range strings.Split(strings.TrimSuffix(sec.Body, "\n"), "\n") {
			thread.FeedLine(line)
		}
		p.Threads = append(p.Threads, thread)
	}
	return nil
}

func (p *DiscussionPage) Exists() bool { return p.exists }

// ArchivedCount reports how many threads were fed into this page during
// the current run.
func (p *DiscussionPage) ArchivedCount() int { return p.archivedCount }

// Size returns the byte size of the serialized page.
func (p *DiscussionPage) Size() int {
	size := len(p.Header) + len(p.Footer)
	for _, t := range p.Threads {
		size += t.Size()
	}
	return size
}

// FeedThread appends a thread and reports whether the page has reached the
// configured cap. Once full, the archiver must roll over to the next
// archive title; the page itself receives no further threads.
func (p *DiscussionPage) FeedThread(t *DiscussionThread, maxSize ArchiveSize) bool {
	p.Threads = append(p.Threads, t)
	p.archivedCount++

	switch maxSize.Unit {
	case SizeThreads:
		if int64(len(p.Threads)) >= maxSize.Amount {
			p.Full = true
		}
	default:
		if int64(p.Size()) >= maxSize.Amount {
			p.Full = true
		}
	}
	return p.Full
}

// Update reserializes the page and persists it with the given summary.
// When sortThreads is set, threads are stably ordered by timestamp
// ascending first.
func (p *DiscussionPage) Update(ctx context.Context, summary string, sortThreads bool) error {
	if sortThreads {
		sort.SliceStable(p.Threads, func(i, j int) bool {
			return p.Threads[i].Timestamp.Before(p.Threads[j].Timestamp)
		})
	}

	var b strings.Builder
	b.WriteString(p.Header)
	if p.Header != "" && !strings.HasSuffix(p.Header, "\n") {
		b.WriteByte('\n')
	}
	for _, t := range p.Threads {
		b.WriteString(t.ToText())
	}
	b.WriteString(p.Footer)

	if err := p.client.SavePage(ctx, p.Title, b.String(), summary); err != nil {
		return err
	}
	p.exists = true
	return nil
}
