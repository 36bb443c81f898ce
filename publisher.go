package jobpress

import "context"

// StoredItem is an item that already exists in the content store.
type StoredItem struct {
	ID    int64
	Title string
	URL   string
}

// Post is a publishable unit: a composed document bound to a store
// category. Composition is all-or-nothing per candidate; a partial
// post is never created.
type Post struct {
	Title      string
	Content    string
	CategoryID int
	SourceURL  string
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.Title == "" {
		return Errorf(EINVALID, "post title required")
	}
	if p.Content == "" {
		return Errorf(EINVALID, "post content required")
	}
	if p.CategoryID <= 0 {
		return Errorf(EINVALID, "post category ID required")
	}
	return nil
}

// Publisher is the content store client. Create is not assumed to be
// idempotent; avoiding a second Create for the same logical item is
// the dedup gate's job, not the store's.
type Publisher interface {
	// Search returns existing items whose titles match the query.
	Search(ctx context.Context, query string) ([]StoredItem, error)

	// Create publishes a new item and returns its stored form.
	Create(ctx context.Context, post *Post) (*StoredItem, error)
}

// CategoryMap binds each Category to the content store's external
// category identifier. It is supplied by configuration, never
// hardcoded in the classifier.
type CategoryMap map[Category]int

// Validate returns an error unless every category is mapped to a
// positive identifier.
func (m CategoryMap) Validate() error {
	for _, c := range Categories() {
		id, ok := m[c]
		if !ok {
			return Errorf(EINVALID, "category %q has no store identifier", c)
		}
		if id <= 0 {
			return Errorf(EINVALID, "category %q has invalid store identifier %d", c, id)
		}
	}
	return nil
}
