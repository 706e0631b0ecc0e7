package archiver

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"archivebot/internal/providers"
)

// Defaults for the optional template parameters.
const (
	defaultMaxSize        = "200K"
	defaultMinLeft        = 5
	defaultMinToArchive   = 2
	defaultArchiveHeader  = "{{talkarchive}}"
	defaultCounter        = 1
	counterPlaceholder    = "%(counter)d"
	defaultArchiveSummary = "Archiving %d thread(s) from [[%s]]"
)

var (
	algoPat = regexp.MustCompile(`^old\((.*)\)$`)
	varPat  = regexp.MustCompile(`%\((counter|year|isoyear|isoweek|semester|quarter|month|monthname|monthnameshort|week)\)[ds]`)
)

// Options configures one PageArchiver run.
type Options struct {
	// Tpl is the name of the on-wiki configuration template.
	Tpl string
	// Salt feeds the keyed-hash escape hatch for off-subpage archives.
	Salt string
	// Force skips the subpage security check entirely.
	Force bool
	// Now is the reference time for age checks; zero means current UTC time.
	Now time.Time
}

// RunResult summarizes what one run did to one source page.
type RunResult struct {
	Page             string
	ArchivedThreads  int
	RemainingThreads int
	Archives         []string
	Counter          int
	Skipped          bool
	Reason           string
}

// PageArchiver orchestrates archiving of a single discussion page: it
// loads the on-wiki configuration, routes aged-out threads to archive
// pages and commits the updates, archives first.
type PageArchiver struct {
	client   PageClient
	logger   providers.Logger
	stripper *TimeStripper
	opts     Options

	page     *DiscussionPage
	tmpl     *Template
	archives map[string]*DiscussionPage
	order    []string

	now            time.Time
	algoArg        string
	maxAge         time.Duration
	archivePattern string
	maxSize        ArchiveSize
	counter        int
	minLeft        int
	minToArchive   int
	archiveHeader  string
}

func New(client PageClient, logger providers.Logger, stripper *TimeStripper, title string, opts Options) *PageArchiver {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &PageArchiver{
		client:   client,
		logger:   logger,
		stripper: stripper,
		opts:     opts,
		page:     NewDiscussionPage(title, client, stripper),
		archives: make(map[string]*DiscussionPage),
		now:      now,
	}
}

// Run executes the whole state machine for the source page:
// load & validate config, analyze threads, commit. Configuration and
// security failures abort the page before anything is written.
func (a *PageArchiver) Run(ctx context.Context) (*RunResult, error) {
	if err := a.loadConfig(ctx); err != nil {
		return nil, err
	}
	if err := a.checkSecurity(); err != nil {
		return nil, err
	}
	if err := a.page.Load(ctx, ""); err != nil {
		return nil, err
	}

	kept, whys, err := a.analyze(ctx)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Page:             a.page.Title,
		ArchivedThreads:  a.archivedCount(),
		RemainingThreads: len(kept),
		Counter:          a.counter,
		Archives:         append([]string(nil), a.order...),
	}

	if result.ArchivedThreads < a.minToArchive {
		result.Skipped = true
		result.Reason = fmt.Sprintf("only %d thread(s) eligible, below minthreadstoarchive=%d",
			result.ArchivedThreads, a.minToArchive)
		result.Archives = nil
		a.logger.Infof(providers.TypeRun, "[[%s]]: %s, nothing to do", a.page.Title, result.Reason)
		return result, nil
	}

	// Archives are written before the source page so a partial failure
	// never leaves the source pointing at a nonexistent archive.
	for _, title := range a.order {
		archive := a.archives[title]
		summary := fmt.Sprintf(defaultArchiveSummary, archive.ArchivedCount(), a.page.Title)
		if err := archive.Update(ctx, summary, false); err != nil {
			return nil, fmt.Errorf("saving archive [[%s]]: %w", title, err)
		}
		a.logger.Infof(providers.TypeRun, "saved archive [[%s]] (%d thread(s))", title, archive.ArchivedCount())
	}

	a.tmpl.Set("counter", strconv.Itoa(a.counter))
	a.rewriteConfig(kept)
	a.page.Threads = kept

	summary := fmt.Sprintf("Archiving %d thread(s) (%s) to %s",
		result.ArchivedThreads, strings.Join(whys, ", "), formatArchiveList(result.Archives))
	if err := a.page.Update(ctx, summary, false); err != nil {
		return nil, fmt.Errorf("saving source page: %w", err)
	}
	a.logger.Infof(providers.TypeRun, "[[%s]]: archived %d thread(s) to %d archive page(s)",
		a.page.Title, result.ArchivedThreads, len(result.Archives))
	return result, nil
}

// loadConfig finds the configuration transclusion and parses every
// recognized parameter.
func (a *PageArchiver) loadConfig(ctx context.Context) error {
	text, err := a.client.GetPageText(ctx, a.page.Title)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return &MissingConfigError{Page: a.page.Title}
		}
		return err
	}

	tmpl, ok := ParseTemplate(text, a.opts.Tpl)
	if !ok {
		return &MissingConfigError{Page: a.page.Title}
	}
	a.tmpl = tmpl

	a.archivePattern = tmpl.Get("archive").Str("")
	if a.archivePattern == "" {
		return &MissingConfigError{Page: a.page.Title, Param: "archive"}
	}

	algo := tmpl.Get("algo").Str("")
	if algo == "" {
		return &MissingConfigError{Page: a.page.Title, Param: "algo"}
	}
	m := algoPat.FindStringSubmatch(algo)
	if m == nil {
		return &AlgorithmError{Algo: algo}
	}
	a.algoArg = m[1]
	if a.maxAge, err = Str2Time(m[1]); err != nil {
		return err
	}

	if a.counter, err = tmpl.Get("counter").Int("counter", defaultCounter); err != nil {
		return err
	}
	if a.counter < 1 {
		a.counter = 1
	}
	if a.maxSize, err = Str2Size(tmpl.Get("maxarchivesize").Str(defaultMaxSize)); err != nil {
		return err
	}
	if a.minLeft, err = tmpl.Get("minthreadsleft").Int("minthreadsleft", defaultMinLeft); err != nil {
		return err
	}
	if a.minToArchive, err = tmpl.Get("minthreadstoarchive").Int("minthreadstoarchive", defaultMinToArchive); err != nil {
		return err
	}
	a.archiveHeader = a.tmpl.Get("archiveheader").Str(defaultArchiveHeader)
	return nil
}

// checkSecurity enforces the subpage constraint on the archive pattern.
// A malicious on-wiki template must not be able to redirect archival
// writes to an arbitrary page; the salted key is the explicit escape
// hatch for wikis that archive elsewhere.
func (a *PageArchiver) checkSecurity() error {
	if a.opts.Force {
		return nil
	}
	if strings.HasPrefix(a.archivePattern, a.page.Title+"/") {
		return nil
	}
	if key := a.tmpl.Get("key").Str(""); key != "" && key == ArchiveKey(a.opts.Salt, a.page.Title) {
		return nil
	}
	return &ArchiveSecurityError{Page: a.page.Title, Archive: a.archivePattern}
}

// ArchiveKey derives the keyed hash that authorizes an off-subpage
// archive target for the given source page.
func ArchiveKey(salt, title string) string {
	sum := md5.Sum([]byte(salt + "\n" + title))
	return hex.EncodeToString(sum[:])
}

// analyze walks the source threads in order and routes eligible ones to
// archive pages. Returns the threads that stay on the source page and the
// distinct reasons threads were archived for.
func (a *PageArchiver) analyze(ctx context.Context) ([]*DiscussionThread, []string, error) {
	var kept []*DiscussionThread
	var whys []string
	seen := make(map[string]bool)
	counterMatters := strings.Contains(a.archivePattern, counterPlaceholder)
	// Counter values reached by same-run size rollovers are a floor for
	// the reset logic below; only the stale counter loaded from config
	// may be walked back.
	counterFloor := 1

	for _, thread := range a.page.Threads {
		// Retention floor: never drain the page below minthreadsleft,
		// even when every remaining thread is old enough.
		if len(a.page.Threads)-a.archivedCount() <= a.minLeft {
			kept = append(kept, thread)
			continue
		}

		why := thread.ShouldBeArchived(a)
		if why == "" {
			kept = append(kept, thread)
			continue
		}

		if counterMatters {
			// A period variable (year, month, ...) moving on makes the
			// configured counter stale: the computed page does not exist
			// in the fresh period, so numbering restarts at 1. Walking
			// down instead of jumping avoids gaps when only the counter
			// was corrupted.
			for a.counter > counterFloor {
				title := substVars(a.archivePattern, a.titleVars(thread.Timestamp, a.counter))
				if _, touched := a.archives[title]; touched {
					break
				}
				exists, err := a.client.PageExists(ctx, title)
				if err != nil {
					return nil, nil, err
				}
				if exists {
					break
				}
				a.counter--
			}
			// Conversely, skip ahead over archives that already exist
			// with higher numbers.
			for {
				next := substVars(a.archivePattern, a.titleVars(thread.Timestamp, a.counter+1))
				if _, touched := a.archives[next]; !touched {
					exists, err := a.client.PageExists(ctx, next)
					if err != nil {
						return nil, nil, err
					}
					if !exists {
						break
					}
				}
				a.counter++
			}
		}

		title := substVars(a.archivePattern, a.titleVars(thread.Timestamp, a.counter))
		archive, err := a.archive(ctx, title)
		if err != nil {
			return nil, nil, err
		}
		if archive.FeedThread(thread, a.maxSize) && counterMatters {
			a.counter++
			counterFloor = a.counter
		}
		if !seen[why] {
			seen[why] = true
			whys = append(whys, why)
		}
	}
	return kept, whys, nil
}

// archive returns the archive page for title, loading it from the wiki on
// first reference.
func (a *PageArchiver) archive(ctx context.Context, title string) (*DiscussionPage, error) {
	if page, ok := a.archives[title]; ok {
		return page, nil
	}
	page := NewDiscussionPage(title, a.client, a.stripper)
	if err := page.Load(ctx, a.archiveHeader+"\n"); err != nil {
		return nil, err
	}
	a.archives[title] = page
	a.order = append(a.order, title)
	return page, nil
}

func (a *PageArchiver) archivedCount() int {
	n := 0
	for _, page := range a.archives {
		n += page.ArchivedCount()
	}
	return n
}

// titleVars derives the archive title substitution variables from a
// thread's own timestamp, so threads group by when they happened rather
// than when the bot ran.
func (a *PageArchiver) titleVars(ts time.Time, counter int) map[string]string {
	isoYear, isoWeek := ts.ISOWeek()
	month := int(ts.Month())
	long, short := a.stripper.MonthName(ts.Month())
	return map[string]string{
		"counter":        strconv.Itoa(counter),
		"year":           strconv.Itoa(ts.Year()),
		"isoyear":        strconv.Itoa(isoYear),
		"isoweek":        strconv.Itoa(isoWeek),
		"semester":       strconv.Itoa((month-1)/6 + 1),
		"quarter":        strconv.Itoa((month-1)/3 + 1),
		"month":          strconv.Itoa(month),
		"monthname":      long,
		"monthnameshort": short,
		"week":           strconv.Itoa(mondayWeek(ts)),
	}
}

// mondayWeek is the week-of-year number with Monday as the first day of
// the week; days before the year's first Monday fall in week 0.
func mondayWeek(ts time.Time) int {
	wd := (int(ts.Weekday()) + 6) % 7
	return (ts.YearDay() + 6 - wd) / 7
}

func substVars(pattern string, vars map[string]string) string {
	return varPat.ReplaceAllStringFunc(pattern, func(m string) string {
		name := m[2 : len(m)-2]
		return vars[name]
	})
}

// rewriteConfig replaces the configuration transclusion with its
// re-rendered form (updated counter) wherever it survives: the header
// normally, or a kept thread's body if someone moved it there.
func (a *PageArchiver) rewriteConfig(kept []*DiscussionThread) {
	rendered := a.tmpl.Render()
	if header, ok := replaceTransclusion(a.page.Header, a.opts.Tpl, rendered); ok {
		a.page.Header = header
		return
	}
	for _, thread := range kept {
		if content, ok := replaceTransclusion(thread.Content, a.opts.Tpl, rendered); ok {
			thread.Content = content
			return
		}
	}
	a.logger.Warnf(providers.TypeRun, "[[%s]]: config template vanished during rewrite, counter not updated", a.page.Title)
}

func replaceTransclusion(text, name, rendered string) (string, bool) {
	tpl, ok := ParseTemplate(text, name)
	if !ok {
		return text, false
	}
	return text[:tpl.Start] + rendered + text[tpl.End:], true
}

func formatArchiveList(titles []string) string {
	sorted := append([]string(nil), titles...)
	sort.Strings(sorted)
	for i, t := range sorted {
		sorted[i] = "[[" + t + "]]"
	}
	return strings.Join(sorted, ", ")
}
