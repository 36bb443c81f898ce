package http

import (
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/rojgarbhaskar/jobpress"
)

// minFeedTitleLen mirrors the harvester's anchor text minimum: feed
// items with shorter titles are navigation noise.
const minFeedTitleLen = 10

// Compile-time interface verification.
var _ jobpress.FeedHarvester = (*FeedHarvester)(nil)

// FeedHarvester extracts candidates from RSS feed XML. Sources that
// expose feeds get cleaner candidate titles than listing-page anchors.
type FeedHarvester struct{}

// NewFeedHarvester creates a new FeedHarvester.
func NewFeedHarvester() *FeedHarvester {
	return &FeedHarvester{}
}

// HarvestFeed parses RSS (and Atom) XML and returns one candidate per
// item, in feed order. Malformed XML or zero usable items yield an
// empty slice; the source's keyword filter applies the same way it
// does for listing anchors.
func (h *FeedHarvester) HarvestFeed(xml string, profile jobpress.SourceProfile) []jobpress.Candidate {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil
	}

	keywords := make([]string, len(profile.Keywords))
	for i, kw := range profile.Keywords {
		keywords[i] = strings.ToLower(kw)
	}

	var candidates []jobpress.Candidate
	appendItem := func(title, link string) {
		title = strings.Join(strings.Fields(title), " ")
		link = strings.TrimSpace(link)
		if link == "" || utf8.RuneCountInString(title) < minFeedTitleLen {
			return
		}
		if len(keywords) > 0 {
			folded := strings.ToLower(title)
			match := false
			for _, kw := range keywords {
				if strings.Contains(folded, kw) || strings.Contains(strings.ToLower(link), kw) {
					match = true
					break
				}
			}
			if !match {
				return
			}
		}
		candidates = append(candidates, jobpress.Candidate{Title: title, URL: link})
	}

	for _, item := range doc.FindElements("//item") {
		title := elementText(item, "title")
		link := elementText(item, "link")
		appendItem(title, link)
	}

	// Atom feeds carry the link as an attribute.
	for _, entry := range doc.FindElements("//entry") {
		appendItem(elementText(entry, "title"), atomLink(entry))
	}

	return candidates
}

// atomLink picks the entry's item URL. Entries commonly list a
// rel="self" link pointing back at the feed, so rel="alternate" wins,
// then the first link without a rel.
func atomLink(entry *etree.Element) string {
	var bare string
	for _, el := range entry.SelectElements("link") {
		href := el.SelectAttrValue("href", "")
		if href == "" {
			continue
		}
		switch el.SelectAttrValue("rel", "") {
		case "alternate":
			return href
		case "":
			if bare == "" {
				bare = href
			}
		}
	}
	return bare
}

func elementText(parent *etree.Element, name string) string {
	if el := parent.SelectElement(name); el != nil {
		return el.Text()
	}
	return ""
}
