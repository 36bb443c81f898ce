// Package compose renders extracted records into the canonical
// document: a fixed section skeleton with per-field fallback text, so
// output stays format-stable no matter how inconsistent the source
// markup was.
package compose

import (
	"html"
	"net/url"
	"strings"

	"github.com/rojgarbhaskar/jobpress"
)

// Section headings, in their fixed order.
const (
	headingOverview = "Overview"
	headingDates    = "Important Dates"
	headingFee      = "Application Fee"
	headingAge      = "Age Limit"
	headingVacancy  = "Vacancy Details"
	headingLinks    = "Important Links"
	headingFAQ      = "FAQ"
)

// Fallback text substituted when extraction found nothing for a
// section. These strings are part of the output contract.
const (
	fallbackOverview = "Interested candidates should read the official notification carefully before applying."
	fallbackDates    = "Check Notification"
	fallbackFee      = "Check Notification"
	fallbackAge      = "As per Rules"
	fallbackVacancy  = "See Notification for Vacancy Details"
	footerText       = "All candidates are advised to verify every detail on the official website before applying."
)

// linkActionText is the action cell rendered for each categorized link.
const linkActionText = "Click Here"

// displayLabels maps link labels to their rendered row labels, in
// render order.
var displayLabels = []struct {
	label jobpress.LinkLabel
	text  string
}{
	{jobpress.LinkApplyOnline, "Apply Online"},
	{jobpress.LinkDownloadNotification, "Download Notification"},
	{jobpress.LinkDownloadAdmitCard, "Download Admit Card"},
	{jobpress.LinkCheckResult, "Check Result"},
	{jobpress.LinkOfficialWebsite, "Official Website"},
}

// Compile-time interface verification.
var _ jobpress.Composer = (*Composer)(nil)

// Composer renders records into canonical documents. It is stateless;
// Compose is pure and deterministic.
type Composer struct{}

// NewComposer creates a new Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose renders the fixed section ordering: header, overview,
// dates, fee, age limit, vacancy, links, FAQ, footer. Sections with no
// extracted rows render their fallback row instead of an empty table;
// the links table renders only the labels actually present; the FAQ
// block is omitted entirely when empty.
func (c *Composer) Compose(record *jobpress.ExtractedRecord, category jobpress.Category) *jobpress.Document {
	var b strings.Builder

	b.WriteString("<h2>" + html.EscapeString(record.Title) + "</h2>\n")

	overview := record.Excerpt
	if overview == "" {
		overview = fallbackOverview
	}
	writeHeading(&b, headingOverview)
	b.WriteString("<p>" + html.EscapeString(overview) + "</p>\n")

	writeRowTable(&b, headingDates, record.Rows(jobpress.KindDates), fallbackDates)
	writeRowTable(&b, headingFee, record.Rows(jobpress.KindFee), fallbackFee)
	writeRowTable(&b, headingAge, record.Rows(jobpress.KindAgeLimit), fallbackAge)

	vacancyRows := record.Rows(jobpress.KindVacancy)
	vacancyRows = append(vacancyRows, record.Rows(jobpress.KindEligibility)...)
	writeRowTable(&b, headingVacancy, vacancyRows, fallbackVacancy)

	writeLinksTable(&b, record)
	writeFAQ(&b, record.FAQs)
	writeFooter(&b, record.SourceURL)

	return &jobpress.Document{Title: record.Title, HTML: b.String()}
}

func writeHeading(b *strings.Builder, text string) {
	b.WriteString("<h3>" + text + "</h3>\n")
}

// writeRowTable renders a label/value table. Rows whose normalized
// label duplicates an earlier row are dropped; no other row is ever
// dropped. Empty sections render a single fallback row labeled with
// the section heading.
func writeRowTable(b *strings.Builder, heading string, rows []jobpress.FieldRow, fallback string) {
	if len(rows) == 0 {
		rows = []jobpress.FieldRow{{Label: heading, Value: fallback}}
	}

	writeHeading(b, heading)
	b.WriteString("<table><tbody>\n")
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := strings.ToLower(strings.TrimSpace(row.Label))
		if seen[key] {
			continue
		}
		seen[key] = true
		b.WriteString("<tr><td>" + html.EscapeString(row.Label) + "</td><td>" + html.EscapeString(row.Value) + "</td></tr>\n")
	}
	b.WriteString("</tbody></table>\n")
}

// writeLinksTable renders one action row per present link label, in
// fixed label order. The section is skipped when the record has no
// categorized links.
func writeLinksTable(b *strings.Builder, record *jobpress.ExtractedRecord) {
	if len(record.Links) == 0 {
		return
	}

	writeHeading(b, headingLinks)
	b.WriteString("<table><tbody>\n")
	for _, d := range displayLabels {
		entry, ok := record.Link(d.label)
		if !ok {
			continue
		}
		b.WriteString("<tr><td>" + d.text + `</td><td><a href="` +
			html.EscapeString(entry.Target) + `" rel="nofollow">` + linkActionText + "</a></td></tr>\n")
	}
	b.WriteString("</tbody></table>\n")
}

func writeFAQ(b *strings.Builder, faqs []jobpress.FaqEntry) {
	if len(faqs) == 0 {
		return
	}
	writeHeading(b, headingFAQ)
	for _, f := range faqs {
		b.WriteString("<p>" + html.EscapeString(f.Text) + "</p>\n")
	}
}

func writeFooter(b *strings.Builder, sourceURL string) {
	b.WriteString("<hr/>\n<p><em>" + footerText + "</em>")
	if host := sourceHost(sourceURL); host != "" {
		b.WriteString(` <strong>Source:</strong> <a href="` + html.EscapeString(sourceURL) + `" rel="nofollow">` + html.EscapeString(host) + "</a>")
	}
	b.WriteString("</p>\n")
}

func sourceHost(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	return u.Host
}
