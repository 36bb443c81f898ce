package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rojgarbhaskar/jobpress"
)

// Title resolution bounds and keywords. A heading only qualifies as
// the item title if it is plausibly a full notification title rather
// than a section heading or a banner.
const (
	minHeadingTitleLen = 20
	maxHeadingTitleLen = 200
	minDocTitleLen     = 20
)

var titleKeywords = []string{"recruitment", "vacancy", "notification", "admit", "result", "apply"}

// Excerpt bounds: shorter blocks are boilerplate, longer ones are
// merged page content.
const (
	minExcerptLen = 50
	maxExcerptLen = 500
)

// FAQ extraction bounds.
const (
	maxFAQEntries = 10
	minFAQLen     = 20
)

// placeholderValues are cell values that carry no information.
var placeholderValues = map[string]bool{
	"n/a": true,
	"na":  true,
	"-":   true,
	"--":  true,
	"—":   true,
	".":   true,
}

// siteSuffixSeparators split a document title from an appended site
// name.
var siteSuffixSeparators = []string{" | ", " – ", " — ", " :: ", " - "}

var (
	datePattern = regexp.MustCompile(`(?i)\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}|\d{1,2}\s+(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}`)
	feePattern  = regexp.MustCompile(`(?i)(₹|rs\.?\s*\d|inr\s*\d|\d+\s*/-)\S*`)
)

// linkRule binds a link label to its anchor-text keyword set. Rules
// are evaluated in this order and each label is filled at most once.
type linkRule struct {
	label    jobpress.LinkLabel
	keywords []string
}

var linkRules = []linkRule{
	{jobpress.LinkApplyOnline, []string{"apply online", "apply now", "online form", "registration"}},
	{jobpress.LinkDownloadNotification, []string{"download notification", "official notification", "notification", "advertisement"}},
	{jobpress.LinkDownloadAdmitCard, []string{"admit card", "hall ticket", "call letter"}},
	{jobpress.LinkCheckResult, []string{"result", "merit list", "scorecard"}},
	{jobpress.LinkOfficialWebsite, []string{"official website", "official site"}},
}

// Compile-time interface verification.
var _ jobpress.Extractor = (*Extractor)(nil)

// Extractor turns detail page markup into a normalized record. It
// never fails: any internal inconsistency degrades to a minimal record
// built from the fallback title and source URL.
type Extractor struct {
	blocklist []string
}

// NewExtractor creates an Extractor. The blocklist holds aggregator
// hostnames whose links must never appear in categorized link entries.
func NewExtractor(blocklist []string) *Extractor {
	return &Extractor{blocklist: blocklist}
}

// Extract builds the record for one detail page.
func (e *Extractor) Extract(html string, sourceURL string, fallbackTitle string) *jobpress.ExtractedRecord {
	rec := &jobpress.ExtractedRecord{
		Title:     collapseSpace(fallbackTitle),
		SourceURL: sourceURL,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return rec
	}

	if title := resolveTitle(doc); title != "" {
		rec.Title = title
	}
	rec.Excerpt = extractExcerpt(doc)
	rec.Tables = classifyTables(doc)
	rec.Tables = append(rec.Tables, scanInlineFacts(doc, rec.Tables)...)
	rec.Links = e.categorizeLinks(doc, sourceURL)
	rec.FAQs = extractFAQs(doc)

	return rec
}

// resolveTitle applies the title priority chain: a job-domain heading,
// the document title with site suffixes stripped, then og:title. A
// keyword-bearing heading below the length floor still beats the
// caller-supplied fallback as a last resort; the fallback stays in
// place only when every source misses.
func resolveTitle(doc *goquery.Document) string {
	var fromHeading, shortHeading string
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseSpace(sel.Text())
		n := utf8.RuneCountInString(text)
		if n == 0 || n > maxHeadingTitleLen {
			return true
		}
		if !containsAny(strings.ToLower(text), titleKeywords) {
			return true
		}
		if n < minHeadingTitleLen {
			if shortHeading == "" {
				shortHeading = text
			}
			return true
		}
		fromHeading = text
		return false
	})
	if fromHeading != "" {
		return fromHeading
	}

	if docTitle := stripSiteSuffix(collapseSpace(doc.Find("title").First().Text())); utf8.RuneCountInString(docTitle) > minDocTitleLen {
		return docTitle
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if og = collapseSpace(og); og != "" {
			return og
		}
	}

	return shortHeading
}

// stripSiteSuffix removes an appended site name from a document title,
// as long as enough title remains to stand alone.
func stripSiteSuffix(title string) string {
	for _, sep := range siteSuffixSeparators {
		if idx := strings.LastIndex(title, sep); idx > 0 {
			head := strings.TrimSpace(title[:idx])
			if utf8.RuneCountInString(head) > minDocTitleLen {
				title = head
			}
		}
	}
	return title
}

// extractExcerpt returns the first paragraph whose length falls inside
// the excerpt bounds, or empty if none qualifies.
func extractExcerpt(doc *goquery.Document) string {
	var excerpt string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseSpace(sel.Text())
		n := utf8.RuneCountInString(text)
		if n < minExcerptLen || n > maxExcerptLen {
			return true
		}
		excerpt = text
		return false
	})
	return excerpt
}

// classifyTables converts every table-shaped structure into a
// classified block. Kind assignment is keyword-overlap scoring over
// the table's cell text; exact score ties and zero scores classify as
// Unclassified, which folds into Vacancy as the default bucket.
func classifyTables(doc *goquery.Document) []jobpress.TableBlock {
	var blocks []jobpress.TableBlock

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows, folded := tableRows(table)
		if len(rows) == 0 {
			return
		}

		kind := scoreKind(folded)
		if kind == jobpress.KindUnclassified {
			kind = jobpress.KindVacancy
		}
		blocks = append(blocks, jobpress.TableBlock{Kind: kind, Rows: rows})
	})

	return blocks
}

// tableRows extracts label/value rows from a table. A row qualifies
// with at least two non-empty cells: the first cell is the label, the
// remaining cells joined form the value. Rows with placeholder values
// are discarded. The second return value is the folded full cell text
// used for kind scoring.
func tableRows(table *goquery.Selection) ([]jobpress.FieldRow, string) {
	var rows []jobpress.FieldRow
	var text strings.Builder

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			v := collapseSpace(cell.Text())
			text.WriteString(strings.ToLower(v))
			text.WriteByte(' ')
			if v != "" {
				cells = append(cells, v)
			}
		})
		if len(cells) < 2 {
			return
		}

		value := strings.Join(cells[1:], " | ")
		if placeholderValues[strings.ToLower(value)] {
			return
		}
		rows = append(rows, jobpress.FieldRow{Label: cells[0], Value: value})
	})

	return rows, text.String()
}

// scoreKind returns the kind whose keyword set has the highest overlap
// with the folded table text. Ties and zero scores return
// KindUnclassified.
func scoreKind(folded string) jobpress.TableKind {
	best := jobpress.KindUnclassified
	bestScore := 0
	tied := false

	for _, rule := range jobpress.KindRules() {
		score := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(folded, kw) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = rule.Kind, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}

	if bestScore == 0 || tied {
		return jobpress.KindUnclassified
	}
	return best
}

// scanInlineFacts recovers Dates and Fee facts rendered outside
// tables. It only runs for kinds that no table supplied, because some
// sources publish these facts as plain paragraphs.
func scanInlineFacts(doc *goquery.Document, existing []jobpress.TableBlock) []jobpress.TableBlock {
	have := make(map[jobpress.TableKind]bool, len(existing))
	for _, b := range existing {
		have[b.Kind] = true
	}

	var extra []jobpress.TableBlock
	for _, rule := range jobpress.KindRules() {
		if rule.Kind != jobpress.KindDates && rule.Kind != jobpress.KindFee {
			continue
		}
		if have[rule.Kind] {
			continue
		}

		pattern := datePattern
		if rule.Kind == jobpress.KindFee {
			pattern = feePattern
		}

		var rows []jobpress.FieldRow
		doc.Find("p, li").Each(func(_ int, sel *goquery.Selection) {
			text := collapseSpace(sel.Text())
			if text == "" || !containsAny(strings.ToLower(text), rule.Keywords) {
				return
			}
			row, ok := inlineRow(text, pattern)
			if ok {
				rows = append(rows, row)
			}
		})

		// A keyword inside a table cell pairs with the next cell even
		// when the owning table classified as another kind. The pattern
		// requirement applies to combined label+value text only; a
		// sibling cell is already a value.
		doc.Find("td").Each(func(_ int, cell *goquery.Selection) {
			text := collapseSpace(cell.Text())
			if text == "" || !containsAny(strings.ToLower(text), rule.Keywords) {
				return
			}
			value := collapseSpace(cell.Next().Text())
			if value == "" || placeholderValues[strings.ToLower(value)] {
				return
			}
			rows = append(rows, jobpress.FieldRow{Label: text, Value: value})
		})

		if len(rows) > 0 {
			extra = append(extra, jobpress.TableBlock{Kind: rule.Kind, Rows: rows})
		}
	}

	return extra
}

// inlineRow converts a combined label+value text node into a row. A
// colon splits label from value; otherwise the text only qualifies if
// it carries a recognizable date or fee token, which becomes the
// value.
func inlineRow(text string, pattern *regexp.Regexp) (jobpress.FieldRow, bool) {
	if label, value, ok := strings.Cut(text, ":"); ok {
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label != "" && value != "" && !placeholderValues[strings.ToLower(value)] {
			return jobpress.FieldRow{Label: label, Value: value}, true
		}
		return jobpress.FieldRow{}, false
	}

	token := pattern.FindString(text)
	if token == "" {
		return jobpress.FieldRow{}, false
	}
	return jobpress.FieldRow{Label: text, Value: token}, true
}

// categorizeLinks fills each link label with the first anchor in
// document order whose visible text matches the label's keyword set
// and whose resolved host is not blocklisted. Each label fills at most
// once, and a URL is never reused across labels.
func (e *Extractor) categorizeLinks(doc *goquery.Document, sourceURL string) []jobpress.LinkEntry {
	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}

	used := make(map[string]bool)
	var entries []jobpress.LinkEntry

	for _, rule := range linkRules {
		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.ToLower(collapseSpace(sel.Text()))
			if text == "" || !containsAny(text, rule.keywords) {
				return true
			}

			href, exists := sel.Attr("href")
			if !exists || href == "" || isNonHTTPLink(href) {
				return true
			}

			target := href
			if base != nil {
				if resolved := resolveURL(base, href); resolved != "" {
					target = resolved
				}
			}

			u, err := url.Parse(target)
			if err != nil || e.blocked(u.Host) {
				return true
			}
			if used[target] {
				return true
			}

			used[target] = true
			entries = append(entries, jobpress.LinkEntry{Label: rule.label, Target: target})
			return false
		})
	}

	return entries
}

// blocked reports whether the host belongs to a blocklisted aggregator
// domain.
func (e *Extractor) blocked(host string) bool {
	for _, domain := range e.blocklist {
		if hostMatches(host, domain) {
			return true
		}
	}
	return false
}

// extractFAQs collects entries under the first FAQ heading: text
// siblings up to the next heading of equal or higher level, bounded in
// count and minimum length to exclude boilerplate.
func extractFAQs(doc *goquery.Document) []jobpress.FaqEntry {
	var faqs []jobpress.FaqEntry

	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		folded := strings.ToLower(heading.Text())
		if !strings.Contains(folded, "faq") &&
			!strings.Contains(folded, "frequently asked") &&
			!strings.Contains(folded, "question") {
			return true
		}

		level := headingLevel(goquery.NodeName(heading))
		for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
			name := goquery.NodeName(sib)
			if l := headingLevel(name); l > 0 && l <= level {
				break
			}
			if len(faqs) >= maxFAQEntries {
				break
			}

			switch name {
			case "ul", "ol":
				sib.Find("li").Each(func(_ int, li *goquery.Selection) {
					appendFAQ(&faqs, li.Text())
				})
			default:
				appendFAQ(&faqs, sib.Text())
			}
		}
		return false
	})

	if len(faqs) > maxFAQEntries {
		faqs = faqs[:maxFAQEntries]
	}
	return faqs
}

func appendFAQ(faqs *[]jobpress.FaqEntry, text string) {
	if len(*faqs) >= maxFAQEntries {
		return
	}
	text = collapseSpace(text)
	if utf8.RuneCountInString(text) < minFAQLen {
		return
	}
	*faqs = append(*faqs, jobpress.FaqEntry{Text: text})
}

// headingLevel returns 1-6 for h1-h6 node names, 0 otherwise.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
