package http_test

import (
	"testing"

	"github.com/rojgarbhaskar/jobpress"
	jphttp "github.com/rojgarbhaskar/jobpress/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedProfile() jobpress.SourceProfile {
	return jobpress.SourceProfile{
		Name:     "sarkariresult",
		Domain:   "sarkariresult.com",
		FeedURLs: []string{"https://www.sarkariresult.com/feed/"},
	}
}

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>SarkariResult</title>
	<item>
		<title>SSC CGL 2025 Recruitment Apply Online</title>
		<link>https://www.sarkariresult.com/ssc-cgl-2025/</link>
	</item>
	<item>
		<title>Railway ALP Admit Card 2025 Released</title>
		<link>https://www.sarkariresult.com/railway-alp-admit-card/</link>
	</item>
	<item>
		<title>Short</title>
		<link>https://www.sarkariresult.com/too-short/</link>
	</item>
</channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Jobs Feed</title>
	<entry>
		<title>UPSC CSE Notification 2025 Released</title>
		<link href="https://www.sarkariresult.com/upsc-cse-2025/"/>
	</entry>
</feed>`

func TestFeedHarvester_HarvestFeed(t *testing.T) {
	t.Parallel()

	t.Run("extracts RSS items in feed order", func(t *testing.T) {
		t.Parallel()

		got := jphttp.NewFeedHarvester().HarvestFeed(rssFeed, feedProfile())

		require.Len(t, got, 2, "short titles are dropped")
		assert.Equal(t, "SSC CGL 2025 Recruitment Apply Online", got[0].Title)
		assert.Equal(t, "https://www.sarkariresult.com/ssc-cgl-2025/", got[0].URL)
		assert.Equal(t, "Railway ALP Admit Card 2025 Released", got[1].Title)
	})

	t.Run("extracts Atom entries via the link href attribute", func(t *testing.T) {
		t.Parallel()

		got := jphttp.NewFeedHarvester().HarvestFeed(atomFeed, feedProfile())

		require.Len(t, got, 1)
		assert.Equal(t, "UPSC CSE Notification 2025 Released", got[0].Title)
		assert.Equal(t, "https://www.sarkariresult.com/upsc-cse-2025/", got[0].URL)
	})

	t.Run("prefers the alternate link over the self link", func(t *testing.T) {
		t.Parallel()

		feed := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<entry>
		<title>Bank PO Recruitment 2025 Notification</title>
		<link rel="self" href="https://www.sarkariresult.com/feed/entry-1"/>
		<link rel="alternate" href="https://www.sarkariresult.com/bank-po-2025/"/>
	</entry>
</feed>`

		got := jphttp.NewFeedHarvester().HarvestFeed(feed, feedProfile())

		require.Len(t, got, 1)
		assert.Equal(t, "https://www.sarkariresult.com/bank-po-2025/", got[0].URL)
	})

	t.Run("applies the source keyword filter", func(t *testing.T) {
		t.Parallel()

		profile := feedProfile()
		profile.Keywords = []string{"admit card"}

		got := jphttp.NewFeedHarvester().HarvestFeed(rssFeed, profile)

		require.Len(t, got, 1)
		assert.Equal(t, "Railway ALP Admit Card 2025 Released", got[0].Title)
	})

	t.Run("returns empty slice for malformed XML", func(t *testing.T) {
		t.Parallel()

		got := jphttp.NewFeedHarvester().HarvestFeed("<rss><unclosed", feedProfile())
		assert.Empty(t, got)
	})

	t.Run("returns empty slice for feeds without items", func(t *testing.T) {
		t.Parallel()

		got := jphttp.NewFeedHarvester().HarvestFeed(`<rss><channel><title>Empty</title></channel></rss>`, feedProfile())
		assert.Empty(t, got)
	})
}
