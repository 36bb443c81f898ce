package jobpress

// TableKind identifies what a classified table block holds. Kinds are
// assigned by content scoring, never by structural position.
type TableKind string

// Table kinds recognized by the field extractor.
const (
	KindUnclassified TableKind = ""
	KindDates        TableKind = "dates"
	KindFee          TableKind = "fee"
	KindAgeLimit     TableKind = "age-limit"
	KindVacancy      TableKind = "vacancy"
	KindEligibility  TableKind = "eligibility"
)

// FieldRow is an ordered label/value pair extracted from a table or a
// label/value text pattern.
type FieldRow struct {
	Label string
	Value string
}

// TableBlock is a classified group of field rows.
type TableBlock struct {
	Kind TableKind
	Rows []FieldRow
}

// LinkLabel identifies a categorized action link.
type LinkLabel string

// Link labels recognized by the field extractor, in fill order.
const (
	LinkApplyOnline          LinkLabel = "apply-online"
	LinkDownloadNotification LinkLabel = "download-notification"
	LinkDownloadAdmitCard    LinkLabel = "download-admit-card"
	LinkCheckResult          LinkLabel = "check-result"
	LinkOfficialWebsite      LinkLabel = "official-website"
)

// LinkEntry is a categorized link. A record holds at most one entry
// per label, and a given target URL is never reused across labels.
type LinkEntry struct {
	Label  LinkLabel
	Target string
}

// FaqEntry is one free-text FAQ item, in document order.
type FaqEntry struct {
	Text string
}

// ExtractedRecord is the normalized form of one detail page. It is
// built once per page and immutable after construction. Missing fields
// stay zero-valued; composition substitutes fallbacks.
type ExtractedRecord struct {
	Title     string
	Excerpt   string
	Tables    []TableBlock
	Links     []LinkEntry
	FAQs      []FaqEntry
	SourceURL string
}

// Rows returns all rows of the given kind across table blocks,
// preserving document order.
func (r *ExtractedRecord) Rows(kind TableKind) []FieldRow {
	var rows []FieldRow
	for _, t := range r.Tables {
		if t.Kind == kind {
			rows = append(rows, t.Rows...)
		}
	}
	return rows
}

// Link returns the entry for a label, if present.
func (r *ExtractedRecord) Link(label LinkLabel) (LinkEntry, bool) {
	for _, l := range r.Links {
		if l.Label == label {
			return l, true
		}
	}
	return LinkEntry{}, false
}

// Extractor turns detail page markup into an ExtractedRecord. It never
// fails: on malformed or unparseable input it returns a minimal record
// built from the fallback title and source URL, because detail pages
// are untrusted and heterogeneous.
type Extractor interface {
	Extract(html string, sourceURL string, fallbackTitle string) *ExtractedRecord
}
