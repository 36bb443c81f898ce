package jobpress

// Candidate is a (title, URL) pair discovered on a listing page or in
// a feed, not yet verified as a real item. The title may be placeholder
// text that is replaced by the detail page's own title during
// extraction.
type Candidate struct {
	Title string
	URL   string
}

// SourceProfile describes one scrape source. New sources are added by
// supplying a profile in configuration, not by writing source-specific
// pipeline code.
type SourceProfile struct {
	// Name is the human-readable source name, used for attribution
	// and progress reporting.
	Name string

	// Domain is the source's own domain. Harvested anchors must
	// resolve to this domain (or a subdomain of it) or be
	// site-relative.
	Domain string

	// ListingURLs are the listing pages to harvest candidates from.
	ListingURLs []string

	// FeedURLs are optional RSS feeds to harvest candidates from.
	FeedURLs []string

	// Keywords optionally require anchor text or href to contain at
	// least one of these terms. This tightens or relaxes recall per
	// source without changing the harvest algorithm.
	Keywords []string
}

// Validate returns an error if the profile contains invalid fields.
func (p *SourceProfile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if p.Domain == "" {
		return Errorf(EINVALID, "source domain required")
	}
	if len(p.ListingURLs) == 0 && len(p.FeedURLs) == 0 {
		return Errorf(EINVALID, "source %q needs at least one listing or feed URL", p.Name)
	}
	return nil
}

// Harvester extracts candidate links from listing page markup.
// Zero matches yield an empty slice, not an error; the caller treats
// an empty result as "nothing to do".
type Harvester interface {
	Harvest(html string, baseURL string, profile SourceProfile) ([]Candidate, error)
}

// FeedHarvester extracts candidates from feed XML. Malformed feeds
// yield an empty slice.
type FeedHarvester interface {
	HarvestFeed(xml string, profile SourceProfile) []Candidate
}
