// Package pipeline orchestrates the extraction-classification-publish
// run: harvesting candidates from configured sources, fetching and
// extracting detail pages with bounded concurrency, and publishing
// each distinct item at most once through the dedup gate.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rojgarbhaskar/jobpress"
	"golang.org/x/sync/errgroup"
)

// Defaults applied when Runner fields are left zero.
const (
	defaultConcurrency  = 4
	defaultMaxPerSource = 10
)

// queueExpectedCandidates sizes the Bloom filter behind the candidate
// queue; fpRate trades a tiny chance of dropping a candidate for
// memory.
const (
	queueExpectedCandidates = 10000
	queueFalsePositiveRate  = 0.01
)

// Runner orchestrates one pipeline run.
type Runner struct {
	Fetcher    jobpress.Fetcher
	Harvester  jobpress.Harvester
	Feeds      jobpress.FeedHarvester // optional; used for sources with feed URLs
	Extractor  jobpress.Extractor
	Composer   jobpress.Composer
	Publisher  jobpress.Publisher
	Categories jobpress.CategoryMap
	Limiter    jobpress.HostLimiter // optional per-host pacing
	Runs       jobpress.RunService  // optional run-history ledger

	Concurrency  int
	MaxPerSource int
	PublishDelay time.Duration
	RetryDelays  []time.Duration
	Logger       LogFunc // optional; receives soft-failure notes
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressSkipped
	ProgressPublished
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type   ProgressType
	Source string
	URL    string
	Title  string
	Total  int
	Error  error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// sourcedCandidate pairs a candidate with the source it came from.
type sourcedCandidate struct {
	cand   jobpress.Candidate
	source string
}

type status int

const (
	statusSkipped status = iota
	statusPublished
	statusFailed
)

// outcome holds the terminal state of one candidate.
type outcome struct {
	status status
	record *jobpress.PostRecord
	err    error
}

// Run executes the full pipeline over the given sources and returns
// merged per-candidate counters. Individual candidate failures never
// abort the run; only an invalid category mapping or a canceled
// context does.
func (r *Runner) Run(ctx context.Context, sources []jobpress.SourceProfile, progress ProgressFunc) (*jobpress.RunResult, error) {
	if err := r.Categories.Validate(); err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	queue := r.discover(ctx, sources, delays)
	total := queue.Len()
	result := &jobpress.RunResult{Discovered: total}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	gate := NewGate(r.Publisher)

	// Publishing is serialized: the dedup check-then-create sequence is
	// not atomic against the store, so two workers must not race past
	// the gate for titles that normalize to the same key.
	var publishMu sync.Mutex

	resultCh := make(chan outcome, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for {
			cand, source, ok := queue.Pop()
			if !ok {
				break
			}
			sc := sourcedCandidate{cand: cand, source: source}
			g.Go(func() error {
				resultCh <- r.process(gctx, gate, &publishMu, sc, delays, progress)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var records []*jobpress.PostRecord
	for oc := range resultCh {
		switch oc.status {
		case statusSkipped:
			result.Skipped++
		case statusPublished:
			result.Published++
			if oc.record != nil {
				records = append(records, oc.record)
			}
		case statusFailed:
			result.Failed++
		}
	}

	r.recordRun(ctx, startedAt, result, records)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Total: total})
	}

	return result, nil
}

// discover harvests candidates from every listing page and feed of
// every source into the run's queue, deduplicated by URL and capped
// per source. A listing fetch failure yields zero candidates for that
// page, never an error.
func (r *Runner) discover(ctx context.Context, sources []jobpress.SourceProfile, delays []time.Duration) *Queue {
	queue := NewQueue(queueExpectedCandidates, queueFalsePositiveRate)
	maxPerSource := r.MaxPerSource
	if maxPerSource <= 0 {
		maxPerSource = defaultMaxPerSource
	}

	for _, source := range sources {
		count := 0

		for _, listingURL := range source.ListingURLs {
			if count >= maxPerSource || ctx.Err() != nil {
				break
			}

			markup, err := r.fetch(ctx, listingURL, delays)
			if err != nil {
				r.logf("listing %s: %v", listingURL, err)
				continue
			}

			found, err := r.Harvester.Harvest(markup, listingURL, source)
			if err != nil {
				r.logf("harvest %s: %v", listingURL, err)
				continue
			}

			for _, cand := range found {
				if count >= maxPerSource {
					break
				}
				if queue.Push(cand, source.Name) {
					count++
				}
			}
		}

		if r.Feeds == nil {
			continue
		}
		for _, feedURL := range source.FeedURLs {
			if count >= maxPerSource || ctx.Err() != nil {
				break
			}

			xml, err := r.fetch(ctx, feedURL, delays)
			if err != nil {
				r.logf("feed %s: %v", feedURL, err)
				continue
			}

			for _, cand := range r.Feeds.HarvestFeed(xml, source) {
				if count >= maxPerSource {
					break
				}
				if queue.Push(cand, source.Name) {
					count++
				}
			}
		}
	}

	return queue
}

// process walks one candidate through its state machine:
// cheap dedup check, detail fetch, extraction, classification,
// composition, resolved-title dedup check, publish.
func (r *Runner) process(ctx context.Context, gate *Gate, publishMu *sync.Mutex, sc sourcedCandidate, delays []time.Duration, progress ProgressFunc) outcome {
	cand := sc.cand

	// Cheap check on the raw candidate title bounds wasted fetch and
	// extraction work for items published in an earlier run.
	ok, err := gate.ShouldPublish(ctx, cand.Title)
	if err != nil {
		r.logf("dedup check %q: %v", cand.Title, err)
	}
	if !ok {
		r.emit(progress, ProgressEvent{Type: ProgressSkipped, Source: sc.source, URL: cand.URL, Title: cand.Title})
		return outcome{status: statusSkipped}
	}

	record := r.fetchAndExtract(ctx, cand, delays)
	category := jobpress.Classify(record.Title)
	doc := r.Composer.Compose(record, category)
	categoryID := r.Categories[category]

	publishMu.Lock()
	defer publishMu.Unlock()

	// Second check on the resolved title, which may differ materially
	// from the candidate title.
	ok, err = gate.ShouldPublish(ctx, record.Title)
	if err != nil {
		r.logf("dedup check %q: %v", record.Title, err)
	}
	if !ok {
		r.emit(progress, ProgressEvent{Type: ProgressSkipped, Source: sc.source, URL: cand.URL, Title: record.Title})
		return outcome{status: statusSkipped}
	}

	post := &jobpress.Post{
		Title:      doc.Title,
		Content:    doc.HTML,
		CategoryID: categoryID,
		SourceURL:  cand.URL,
	}

	item, err := r.Publisher.Create(ctx, post)
	if err != nil {
		r.emit(progress, ProgressEvent{Type: ProgressFailed, Source: sc.source, URL: cand.URL, Title: doc.Title, Error: err})
		return outcome{status: statusFailed, err: err}
	}

	r.pause(ctx)

	r.emit(progress, ProgressEvent{Type: ProgressPublished, Source: sc.source, URL: item.URL, Title: doc.Title})
	return outcome{
		status: statusPublished,
		record: &jobpress.PostRecord{
			Title:       doc.Title,
			URL:         item.URL,
			Category:    category,
			ContentHash: contentHash(doc.HTML),
		},
	}
}

// fetchAndExtract retrieves the detail page and extracts its record.
// A failed fetch degrades to a minimal record carrying only the
// candidate title and source link, so the candidate still publishes
// with fallback content rather than aborting.
func (r *Runner) fetchAndExtract(ctx context.Context, cand jobpress.Candidate, delays []time.Duration) *jobpress.ExtractedRecord {
	markup, err := r.fetch(ctx, cand.URL, delays)
	if err != nil {
		r.logf("detail %s: %v", cand.URL, err)
		return &jobpress.ExtractedRecord{Title: cand.Title, SourceURL: cand.URL}
	}
	return r.Extractor.Extract(markup, cand.URL, cand.Title)
}

// fetch applies per-host pacing and retry backoff around the Fetcher.
func (r *Runner) fetch(ctx context.Context, rawURL string, delays []time.Duration) (string, error) {
	if r.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", err
		}
		if err := r.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return FetchWithRetryDelays(ctx, rawURL, r.Fetcher.Fetch, r.Logger, delays)
}

// pause inserts the configured delay between successive publish calls.
// It runs while the publish lock is held so the store sees paced,
// serialized writes.
func (r *Runner) pause(ctx context.Context) {
	if r.PublishDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(r.PublishDelay):
	}
}

// recordRun persists the completed run and its published items to the
// ledger. Ledger failures are logged, never fatal: the ledger is
// observability, not correctness.
func (r *Runner) recordRun(ctx context.Context, startedAt time.Time, result *jobpress.RunResult, records []*jobpress.PostRecord) {
	if r.Runs == nil {
		return
	}

	run := &jobpress.Run{
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Discovered: result.Discovered,
		Skipped:    result.Skipped,
		Published:  result.Published,
		Failed:     result.Failed,
	}
	if err := r.Runs.CreateRun(ctx, run); err != nil {
		r.logf("record run: %v", err)
		return
	}

	for _, rec := range records {
		rec.RunID = run.ID
		if err := r.Runs.CreatePostRecord(ctx, rec); err != nil {
			r.logf("record post %q: %v", rec.Title, err)
		}
	}
}

func (r *Runner) emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger(format, args...)
	}
}

// contentHash computes a hash of the composed document using xxhash.
func contentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
