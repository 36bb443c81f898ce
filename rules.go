package jobpress

import "strings"

// Category is the publication category of an item. Each category is
// bound to an external identifier owned by the content store's
// configuration (see CategoryMap).
type Category string

// Publication categories.
const (
	CategoryLatestJobs Category = "latest-jobs"
	CategoryResults    Category = "results"
	CategoryAdmitCard  Category = "admit-card"
	CategoryAnswerKey  Category = "answer-key"
	CategorySyllabus   Category = "syllabus"
	CategoryAdmission  Category = "admission"
)

// Categories lists all categories.
func Categories() []Category {
	return []Category{
		CategoryLatestJobs,
		CategoryResults,
		CategoryAdmitCard,
		CategoryAnswerKey,
		CategorySyllabus,
		CategoryAdmission,
	}
}

// CategoryRule binds a category to its keyword set.
type CategoryRule struct {
	Category Category
	Keywords []string
}

// categoryRules is evaluated in order; the first keyword match wins.
// AdmitCard precedes Results by convention: a title carrying both
// "admit card" and "result" must classify as AdmitCard.
var categoryRules = []CategoryRule{
	{CategoryAdmitCard, []string{"admit card", "hall ticket", "call letter"}},
	{CategoryResults, []string{"result", "merit list", "scorecard", "cut off"}},
	{CategoryAnswerKey, []string{"answer key"}},
	{CategorySyllabus, []string{"syllabus", "exam pattern"}},
	{CategoryAdmission, []string{"admission", "counselling", "entrance"}},
}

// CategoryRules returns the classification rules in priority order.
func CategoryRules() []CategoryRule {
	return categoryRules
}

// Classify maps a title to its category. It is a pure function: the
// lower-cased title is tested against each rule's keyword set in
// priority order, and the first match wins. Titles matching no rule
// default to CategoryLatestJobs.
func Classify(title string) Category {
	t := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(t, kw) {
				return rule.Category
			}
		}
	}
	return CategoryLatestJobs
}

// KindRule binds a table kind to its keyword set.
type KindRule struct {
	Kind     TableKind
	Keywords []string
}

// kindRules drives content-based table classification. Identical
// visual tables across sources carry information in different
// positions, so kind assignment is keyword-overlap scoring over cell
// text, never structural position.
var kindRules = []KindRule{
	{KindDates, []string{"date", "schedule", "timeline", "last date"}},
	{KindFee, []string{"fee", "payment", "charges", "application fee"}},
	{KindAgeLimit, []string{"age", "limit", "minimum", "maximum", "relaxation"}},
	{KindVacancy, []string{"post", "total", "department", "organization"}},
	{KindEligibility, []string{"eligibility", "qualification", "education"}},
}

// KindRules returns the table classification rules.
func KindRules() []KindRule {
	return kindRules
}
