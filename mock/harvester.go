package mock

import "github.com/rojgarbhaskar/jobpress"

var _ jobpress.Harvester = (*Harvester)(nil)

// Harvester is a mock implementation of jobpress.Harvester.
type Harvester struct {
	HarvestFn func(html string, baseURL string, profile jobpress.SourceProfile) ([]jobpress.Candidate, error)
}

func (h *Harvester) Harvest(html string, baseURL string, profile jobpress.SourceProfile) ([]jobpress.Candidate, error) {
	return h.HarvestFn(html, baseURL, profile)
}

var _ jobpress.FeedHarvester = (*FeedHarvester)(nil)

// FeedHarvester is a mock implementation of jobpress.FeedHarvester.
type FeedHarvester struct {
	HarvestFeedFn func(xml string, profile jobpress.SourceProfile) []jobpress.Candidate
}

func (h *FeedHarvester) HarvestFeed(xml string, profile jobpress.SourceProfile) []jobpress.Candidate {
	return h.HarvestFeedFn(xml, profile)
}
