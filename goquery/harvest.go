// Package goquery provides the markup-facing implementations of the
// jobpress harvesting and extraction interfaces, built on
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rojgarbhaskar/jobpress"
)

// minAnchorTextLen separates real item titles from icon and arrow
// anchors.
const minAnchorTextLen = 10

// stopPhrases are navigation anchors that never identify an item,
// regardless of where their URL points.
var stopPhrases = map[string]bool{
	"click here": true,
	"read more":  true,
	"view more":  true,
	"home":       true,
	"about":      true,
	"about us":   true,
	"contact":    true,
	"contact us": true,
	"privacy":    true,
	"disclaimer": true,
}

// archivePathPattern matches category/tag/pagination/author archive
// URLs, which are listings rather than items.
var archivePathPattern = regexp.MustCompile(`/(category|tag|page|author)(/|$)`)

// Compile-time interface verification.
var _ jobpress.Harvester = (*Harvester)(nil)

// Harvester extracts candidate links from listing page markup. It is
// deterministic given identical input and has no side effects.
type Harvester struct{}

// NewHarvester creates a new Harvester.
func NewHarvester() *Harvester {
	return &Harvester{}
}

// Harvest enumerates every anchor in document order, resolves hrefs
// against baseURL, and keeps an anchor only if its text looks like an
// item title, it is not a stoplisted navigation phrase, it resolves
// within the source's own domain, and it is not the listing page
// itself or an archive URL. Duplicates by resolved URL keep the first
// occurrence. Zero matches yield an empty slice, never an error.
func (h *Harvester) Harvest(html string, baseURL string, profile jobpress.SourceProfile) ([]jobpress.Candidate, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, jobpress.Errorf(jobpress.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, jobpress.Errorf(jobpress.EINVALID, "failed to parse HTML: %v", err)
	}

	keywords := foldAll(profile.Keywords)
	seen := make(map[string]bool)
	var candidates []jobpress.Candidate

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		if utf8.RuneCountInString(text) < minAnchorTextLen {
			return
		}

		folded := strings.ToLower(text)
		if stopPhrases[folded] {
			return
		}

		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		u, err := url.Parse(resolved)
		if err != nil {
			return
		}
		if u.Host != base.Host && !hostMatches(u.Host, profile.Domain) {
			return
		}
		if archivePathPattern.MatchString(u.Path) {
			return
		}

		if len(keywords) > 0 &&
			!containsAny(folded, keywords) &&
			!containsAny(strings.ToLower(href), keywords) {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true

		candidates = append(candidates, jobpress.Candidate{Title: text, URL: resolved})
	})

	return candidates, nil
}

func foldAll(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}
