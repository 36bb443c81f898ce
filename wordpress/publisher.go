// Package wordpress implements jobpress.Publisher against the
// WordPress REST API (wp-json/wp/v2) using application-password basic
// auth.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rojgarbhaskar/jobpress"
)

// DefaultTimeout bounds store requests. Creates are slower than
// searches on most WordPress hosts, so this covers the worst case.
const DefaultTimeout = 30 * time.Second

// searchPerPage bounds the existence query; titles are near-unique so
// a handful of results is enough for the containment check.
const searchPerPage = 5

// maxTitleLen is the store's effective title limit; longer titles are
// truncated at create time.
const maxTitleLen = 200

// Compile-time interface verification.
var _ jobpress.Publisher = (*Publisher)(nil)

// Publisher is a WordPress REST client.
type Publisher struct {
	client      *http.Client
	siteURL     string
	username    string
	appPassword string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.client.Timeout = d
	}
}

// NewPublisher creates a Publisher for the given site. siteURL is the
// site root without a trailing slash (e.g. https://example.com).
func NewPublisher(siteURL, username, appPassword string, opts ...Option) *Publisher {
	p := &Publisher{
		client:      &http.Client{Timeout: DefaultTimeout},
		siteURL:     siteURL,
		username:    username,
		appPassword: appPassword,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// wpPost is the wire form of a post in search responses.
type wpPost struct {
	ID    int64 `json:"id"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Link string `json:"link"`
}

// createRequest is the wire form of a post create.
type createRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Categories []int  `json:"categories"`
}

// Search returns existing items whose titles match the query, using
// the store's full-text title search.
func (p *Publisher) Search(ctx context.Context, query string) ([]jobpress.StoredItem, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts?search=%s&per_page=%d&_fields=id,title,link",
		p.siteURL, url.QueryEscape(query), searchPerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, jobpress.Errorf(jobpress.EUNAVAILABLE, "store search failed: %v", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var posts []wpPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, jobpress.Errorf(jobpress.EINTERNAL, "store search returned malformed response: %v", err)
	}

	items := make([]jobpress.StoredItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, jobpress.StoredItem{
			ID:    post.ID,
			Title: post.Title.Rendered,
			URL:   post.Link,
		})
	}
	return items, nil
}

// Create publishes a new item. Create is not idempotent; callers must
// gate duplicates before invoking it.
func (p *Publisher) Create(ctx context.Context, post *jobpress.Post) (*jobpress.StoredItem, error) {
	if err := post.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(createRequest{
		Title:      truncateRunes(post.Title, maxTitleLen),
		Content:    post.Content,
		Status:     "publish",
		Categories: []int{post.CategoryID},
	})
	if err != nil {
		return nil, err
	}

	endpoint := p.siteURL + "/wp-json/wp/v2/posts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, jobpress.Errorf(jobpress.EUNAVAILABLE, "store create failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError(resp)
	}

	var created wpPost
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, jobpress.Errorf(jobpress.EINTERNAL, "store create returned malformed response: %v", err)
	}

	return &jobpress.StoredItem{
		ID:    created.ID,
		Title: created.Title.Rendered,
		URL:   created.Link,
	}, nil
}

func (p *Publisher) authorize(req *http.Request) {
	req.SetBasicAuth(p.username, p.appPassword)
	req.Header.Set("Accept", "application/json")
}

func checkStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}
	return statusError(resp)
}

func statusError(resp *http.Response) error {
	// Read a little of the body for context; WordPress returns JSON
	// error envelopes with a human-readable message.
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return jobpress.Errorf(jobpress.EUNAUTHORIZED, "store rejected credentials (HTTP %d)", resp.StatusCode)
	case http.StatusBadRequest:
		return jobpress.Errorf(jobpress.EINVALID, "store rejected request: %s", snippet)
	default:
		return jobpress.Errorf(jobpress.EINTERNAL, "store error: HTTP %d: %s", resp.StatusCode, snippet)
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
