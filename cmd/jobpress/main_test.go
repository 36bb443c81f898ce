package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/rojgarbhaskar/jobpress/cmd/jobpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return context.Background()
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobpress.yml")
	content := `
store:
  site_url: https://example.com
  username: editor
  app_password: secret
sources:
  - name: sarkariresult
    domain: sarkariresult.com
    listing_urls:
      - https://www.sarkariresult.com/latestjob/
categories:
  latest-jobs: 2
  results: 3
  admit-card: 4
  answer-key: 5
  syllabus: 6
  admission: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_HelpFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := main.NewMain()
			m.DBPath = filepath.Join(t.TempDir(), "test.db")

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "jobpress")
			assert.Contains(t, stdout.String(), "Commands:")
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "jobpress")
}

func TestRun_HelpWithoutCreatingDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "should-not-exist.db")

	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "database file should not be created for --help")
}

func TestRun_FlagsBeforeCommand(t *testing.T) {
	t.Run("global flags may precede the command", func(t *testing.T) {
		path := writeTestConfig(t)

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--config", path, "sources"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "sarkariresult")
	})

	t.Run("ledger wiring follows the parsed command", func(t *testing.T) {
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--config", writeTestConfig(t), "runs"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})
}

func TestRun_RunsCommand(t *testing.T) {
	t.Run("empty ledger shows hint", func(t *testing.T) {
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"runs"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})
}

func TestRun_SourcesCommand(t *testing.T) {
	t.Run("lists configured sources", func(t *testing.T) {
		path := writeTestConfig(t)

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"sources", "--config", path}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "sarkariresult")
		assert.Contains(t, stdout.String(), "sarkariresult.com")
	})

	t.Run("missing config is a fatal error with a hint", func(t *testing.T) {
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"sources", "--config", filepath.Join(t.TempDir(), "missing.yml")}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "WP_SITE_URL")
	})
}
