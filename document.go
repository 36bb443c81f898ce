package jobpress

// Document is the canonical composed form of one item: a fixed
// section ordering rendered as a structured markup fragment, suitable
// for direct storage as the body of a published item.
type Document struct {
	Title string
	HTML  string
}

// Composer renders an extracted record into the canonical document.
// Composition is pure and deterministic: source markup variability is
// absorbed during extraction and never leaks into section structure.
type Composer interface {
	Compose(record *ExtractedRecord, category Category) *Document
}
