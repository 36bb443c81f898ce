package compose_test

import (
	"strings"
	"testing"

	"github.com/rojgarbhaskar/jobpress"
	"github.com/rojgarbhaskar/jobpress/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord() *jobpress.ExtractedRecord {
	return &jobpress.ExtractedRecord{
		Title:   "SSC CGL 2025 Recruitment Notification",
		Excerpt: "Staff Selection Commission has released the CGL 2025 notification.",
		Tables: []jobpress.TableBlock{
			{Kind: jobpress.KindDates, Rows: []jobpress.FieldRow{
				{Label: "Last Date", Value: "30/09/2025"},
			}},
			{Kind: jobpress.KindFee, Rows: []jobpress.FieldRow{
				{Label: "General", Value: "Rs. 100/-"},
			}},
			{Kind: jobpress.KindAgeLimit, Rows: []jobpress.FieldRow{
				{Label: "Maximum Age", Value: "27 Years"},
			}},
			{Kind: jobpress.KindVacancy, Rows: []jobpress.FieldRow{
				{Label: "Total Post", Value: "17727"},
			}},
			{Kind: jobpress.KindEligibility, Rows: []jobpress.FieldRow{
				{Label: "Qualification", Value: "Graduate"},
			}},
		},
		Links: []jobpress.LinkEntry{
			{Label: jobpress.LinkApplyOnline, Target: "https://ssc.gov.in/apply"},
			{Label: jobpress.LinkOfficialWebsite, Target: "https://ssc.gov.in/"},
		},
		FAQs: []jobpress.FaqEntry{
			{Text: "When is the last date to apply for SSC CGL 2025?"},
		},
		SourceURL: "https://www.sarkariresult.com/ssc-cgl-2025/",
	}
}

func TestComposer_Compose(t *testing.T) {
	t.Parallel()

	t.Run("renders sections in fixed order", func(t *testing.T) {
		t.Parallel()

		doc := compose.NewComposer().Compose(fullRecord(), jobpress.CategoryLatestJobs)

		order := []string{
			"<h2>SSC CGL 2025 Recruitment Notification</h2>",
			"<h3>Overview</h3>",
			"<h3>Important Dates</h3>",
			"<h3>Application Fee</h3>",
			"<h3>Age Limit</h3>",
			"<h3>Vacancy Details</h3>",
			"<h3>Important Links</h3>",
			"<h3>FAQ</h3>",
			"<hr/>",
		}

		last := -1
		for _, marker := range order {
			idx := strings.Index(doc.HTML, marker)
			require.GreaterOrEqual(t, idx, 0, "missing %q", marker)
			assert.Greater(t, idx, last, "%q out of order", marker)
			last = idx
		}
	})

	t.Run("identical records compose identical documents", func(t *testing.T) {
		t.Parallel()

		c := compose.NewComposer()
		first := c.Compose(fullRecord(), jobpress.CategoryLatestJobs)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Compose(fullRecord(), jobpress.CategoryLatestJobs))
		}
	})

	t.Run("substitutes fallback text for empty sections", func(t *testing.T) {
		t.Parallel()

		rec := &jobpress.ExtractedRecord{
			Title:     "Some Vacancy Notification 2025",
			SourceURL: "https://example.com/item",
		}

		doc := compose.NewComposer().Compose(rec, jobpress.CategoryLatestJobs)

		assert.Contains(t, doc.HTML, "Interested candidates should read the official notification carefully before applying.")
		assert.Contains(t, doc.HTML, "<td>Important Dates</td><td>Check Notification</td>")
		assert.Contains(t, doc.HTML, "<td>Application Fee</td><td>Check Notification</td>")
		assert.Contains(t, doc.HTML, "<td>Age Limit</td><td>As per Rules</td>")
		assert.Contains(t, doc.HTML, "<td>Vacancy Details</td><td>See Notification for Vacancy Details</td>")
	})

	t.Run("merges eligibility rows into the vacancy section", func(t *testing.T) {
		t.Parallel()

		doc := compose.NewComposer().Compose(fullRecord(), jobpress.CategoryLatestJobs)

		vacancyIdx := strings.Index(doc.HTML, "<h3>Vacancy Details</h3>")
		linksIdx := strings.Index(doc.HTML, "<h3>Important Links</h3>")
		section := doc.HTML[vacancyIdx:linksIdx]

		assert.Contains(t, section, "Total Post")
		assert.Contains(t, section, "Qualification")
	})

	t.Run("renders only the link labels present", func(t *testing.T) {
		t.Parallel()

		doc := compose.NewComposer().Compose(fullRecord(), jobpress.CategoryLatestJobs)

		assert.Contains(t, doc.HTML, `<a href="https://ssc.gov.in/apply" rel="nofollow">Click Here</a>`)
		assert.Contains(t, doc.HTML, "Apply Online")
		assert.Contains(t, doc.HTML, "Official Website")
		assert.NotContains(t, doc.HTML, "Download Admit Card")
		assert.NotContains(t, doc.HTML, "Check Result")
	})

	t.Run("omits the links section when no links exist", func(t *testing.T) {
		t.Parallel()

		rec := fullRecord()
		rec.Links = nil

		doc := compose.NewComposer().Compose(rec, jobpress.CategoryLatestJobs)
		assert.NotContains(t, doc.HTML, "<h3>Important Links</h3>")
	})

	t.Run("omits the FAQ block when empty", func(t *testing.T) {
		t.Parallel()

		rec := fullRecord()
		rec.FAQs = nil

		doc := compose.NewComposer().Compose(rec, jobpress.CategoryLatestJobs)
		assert.NotContains(t, doc.HTML, "<h3>FAQ</h3>")
	})

	t.Run("drops rows with duplicate labels keeping the first", func(t *testing.T) {
		t.Parallel()

		rec := &jobpress.ExtractedRecord{
			Title: "Some Recruitment Notification 2025",
			Tables: []jobpress.TableBlock{
				{Kind: jobpress.KindDates, Rows: []jobpress.FieldRow{
					{Label: "Last Date", Value: "30/09/2025"},
					{Label: "last date", Value: "01/10/2025"},
					{Label: "Exam Date", Value: "14/10/2025"},
				}},
			},
			SourceURL: "https://example.com/item",
		}

		doc := compose.NewComposer().Compose(rec, jobpress.CategoryLatestJobs)

		assert.Contains(t, doc.HTML, "30/09/2025")
		assert.NotContains(t, doc.HTML, "01/10/2025")
		assert.Contains(t, doc.HTML, "14/10/2025")
	})

	t.Run("footer links back to the source host", func(t *testing.T) {
		t.Parallel()

		doc := compose.NewComposer().Compose(fullRecord(), jobpress.CategoryLatestJobs)

		assert.Contains(t, doc.HTML, "All candidates are advised to verify every detail on the official website before applying.")
		assert.Contains(t, doc.HTML, `<a href="https://www.sarkariresult.com/ssc-cgl-2025/" rel="nofollow">www.sarkariresult.com</a>`)
	})

	t.Run("escapes markup in extracted values", func(t *testing.T) {
		t.Parallel()

		rec := &jobpress.ExtractedRecord{
			Title: `Recruitment <script>alert("x")</script> Notice`,
			Tables: []jobpress.TableBlock{
				{Kind: jobpress.KindDates, Rows: []jobpress.FieldRow{
					{Label: "<b>Last Date</b>", Value: "30/09/2025"},
				}},
			},
			SourceURL: "https://example.com/item",
		}

		doc := compose.NewComposer().Compose(rec, jobpress.CategoryLatestJobs)

		assert.NotContains(t, doc.HTML, "<script>")
		assert.NotContains(t, doc.HTML, "<b>Last Date</b>")
		assert.Contains(t, doc.HTML, "&lt;script&gt;")
	})

	t.Run("document title matches record title", func(t *testing.T) {
		t.Parallel()

		doc := compose.NewComposer().Compose(fullRecord(), jobpress.CategoryAdmitCard)
		assert.Equal(t, "SSC CGL 2025 Recruitment Notification", doc.Title)
	})
}
