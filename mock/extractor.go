package mock

import "github.com/rojgarbhaskar/jobpress"

var _ jobpress.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jobpress.Extractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string, fallbackTitle string) *jobpress.ExtractedRecord
}

func (e *Extractor) Extract(html string, sourceURL string, fallbackTitle string) *jobpress.ExtractedRecord {
	return e.ExtractFn(html, sourceURL, fallbackTitle)
}

var _ jobpress.Composer = (*Composer)(nil)

// Composer is a mock implementation of jobpress.Composer.
type Composer struct {
	ComposeFn func(record *jobpress.ExtractedRecord, category jobpress.Category) *jobpress.Document
}

func (c *Composer) Compose(record *jobpress.ExtractedRecord, category jobpress.Category) *jobpress.Document {
	return c.ComposeFn(record, category)
}
