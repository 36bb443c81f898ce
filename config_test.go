package jobpress_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rojgarbhaskar/jobpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
store:
  site_url: https://rojgarbhaskar.com/
  username: editor
  app_password: xxxx yyyy zzzz
sources:
  - name: sarkariresult
    domain: sarkariresult.com
    listing_urls:
      - https://www.sarkariresult.com/latestjob/
    keywords:
      - recruitment
      - vacancy
categories:
  latest-jobs: 2
  results: 3
  admit-card: 4
  answer-key: 5
  syllabus: 6
  admission: 7
blocklist:
  - sarkariexam.com
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobpress.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads a valid config with defaults applied", func(t *testing.T) {
		path := writeConfig(t, validConfigYAML)

		cfg, err := jobpress.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "https://rojgarbhaskar.com", cfg.Store.SiteURL, "trailing slash stripped")
		assert.Equal(t, jobpress.DefaultConcurrency, cfg.Pipeline.Concurrency)
		assert.Equal(t, jobpress.DefaultMaxPerSource, cfg.Pipeline.MaxPerSource)
		assert.Equal(t, jobpress.DefaultPublishDelaySecs, cfg.Pipeline.PublishDelaySecs)
		assert.Equal(t, jobpress.DefaultRequestsPerSecond, cfg.Pipeline.RequestsPerSecond)
		assert.Equal(t, "info", cfg.LogLevel)
		require.Len(t, cfg.Sources, 1)
		assert.Equal(t, "sarkariresult", cfg.Sources[0].Name)
	})

	t.Run("environment variables override file credentials", func(t *testing.T) {
		t.Setenv(jobpress.EnvSiteURL, "https://override.example.com")
		t.Setenv(jobpress.EnvUsername, "envuser")
		t.Setenv(jobpress.EnvAppPassword, "env secret")

		path := writeConfig(t, validConfigYAML)

		cfg, err := jobpress.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://override.example.com", cfg.Store.SiteURL)
		assert.Equal(t, "envuser", cfg.Store.Username)
		assert.Equal(t, "env secret", cfg.Store.AppPassword)
	})

	t.Run("returns EINVALID for missing file", func(t *testing.T) {
		_, err := jobpress.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
		assert.Equal(t, jobpress.EINVALID, jobpress.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "store: [not a mapping")

		_, err := jobpress.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, jobpress.EINVALID, jobpress.ErrorCode(err))
	})

	t.Run("returns error when credentials missing everywhere", func(t *testing.T) {
		path := writeConfig(t, `
sources:
  - name: s
    domain: example.com
    listing_urls: [https://example.com/jobs]
categories:
  latest-jobs: 2
  results: 3
  admit-card: 4
  answer-key: 5
  syllabus: 6
  admission: 7
`)

		_, err := jobpress.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, jobpress.EINVALID, jobpress.ErrorCode(err))
	})

	t.Run("returns error when a category mapping is missing", func(t *testing.T) {
		path := writeConfig(t, `
store:
  site_url: https://example.com
  username: u
  app_password: p
sources:
  - name: s
    domain: example.com
    listing_urls: [https://example.com/jobs]
categories:
  latest-jobs: 2
`)

		_, err := jobpress.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, jobpress.EINVALID, jobpress.ErrorCode(err))
	})

	t.Run("returns error for unknown category name", func(t *testing.T) {
		path := writeConfig(t, `
store:
  site_url: https://example.com
  username: u
  app_password: p
sources:
  - name: s
    domain: example.com
    listing_urls: [https://example.com/jobs]
categories:
  latest-jobs: 2
  results: 3
  admit-card: 4
  answer-key: 5
  syllabus: 6
  admission: 7
  bogus: 9
`)

		_, err := jobpress.LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, jobpress.ErrorMessage(err), "bogus")
	})

	t.Run("returns error for source without URLs", func(t *testing.T) {
		path := writeConfig(t, `
store:
  site_url: https://example.com
  username: u
  app_password: p
sources:
  - name: s
    domain: example.com
categories:
  latest-jobs: 2
  results: 3
  admit-card: 4
  answer-key: 5
  syllabus: 6
  admission: 7
`)

		_, err := jobpress.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, jobpress.EINVALID, jobpress.ErrorCode(err))
	})
}

func TestConfig_Profiles(t *testing.T) {
	t.Run("converts all sources", func(t *testing.T) {
		path := writeConfig(t, validConfigYAML)

		cfg, err := jobpress.LoadConfig(path)
		require.NoError(t, err)

		profiles := cfg.Profiles()
		require.Len(t, profiles, 1)
		assert.Equal(t, "sarkariresult", profiles[0].Name)
		assert.Equal(t, "sarkariresult.com", profiles[0].Domain)
		assert.Equal(t, []string{"recruitment", "vacancy"}, profiles[0].Keywords)
	})
}

func TestCategoryMap_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete mapping", func(t *testing.T) {
		t.Parallel()

		m := jobpress.CategoryMap{}
		for i, c := range jobpress.Categories() {
			m[c] = i + 1
		}
		assert.NoError(t, m.Validate())
	})

	t.Run("rejects a missing category", func(t *testing.T) {
		t.Parallel()

		m := jobpress.CategoryMap{jobpress.CategoryLatestJobs: 2}
		err := m.Validate()
		require.Error(t, err)
		assert.Equal(t, jobpress.EINVALID, jobpress.ErrorCode(err))
	})

	t.Run("rejects a non-positive identifier", func(t *testing.T) {
		t.Parallel()

		m := jobpress.CategoryMap{}
		for i, c := range jobpress.Categories() {
			m[c] = i + 1
		}
		m[jobpress.CategoryResults] = 0

		err := m.Validate()
		require.Error(t, err)
		assert.Equal(t, jobpress.EINVALID, jobpress.ErrorCode(err))
	})
}
