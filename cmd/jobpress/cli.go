package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/rojgarbhaskar/jobpress"
	"github.com/rojgarbhaskar/jobpress/pipeline"
	"github.com/rojgarbhaskar/jobpress/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config    *jobpress.Config
	DB        *sqlite.DB
	Runs      jobpress.RunService
	Fetcher   jobpress.Fetcher
	Harvester jobpress.Harvester
	Runner    *pipeline.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Scrape all configured sources and publish new items"`
	Preview PreviewCmd `cmd:"" help:"Harvest candidates without fetching details or publishing"`
	Runs    RunsCmd    `cmd:"" help:"List recorded pipeline runs"`
	Sources SourcesCmd `cmd:"" help:"List configured sources"`

	Config string `short:"c" env:"JOBPRESS_CONFIG" default:"jobpress.yml" help:"Config file path"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Concurrency int `help:"Override concurrent fetch limit"`
	MaxItems    int `help:"Override max candidates per source"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	Source string `arg:"" optional:"" help:"Restrict preview to one source by name"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `default:"20" help:"Number of runs to show"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
