package main

import (
	"fmt"

	"github.com/rojgarbhaskar/jobpress"
	"github.com/rojgarbhaskar/jobpress/pipeline"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	// Apply user-specified overrides
	if c.Concurrency > 0 {
		deps.Runner.Concurrency = c.Concurrency
	}
	if c.MaxItems > 0 {
		deps.Runner.MaxPerSource = c.MaxItems
	}

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d candidates\n", event.Total)
		case pipeline.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip %q (already published)\n", event.Title)
		case pipeline.ProgressPublished:
			fmt.Fprintf(deps.Stdout, "  published %q -> %s\n", event.Title, event.URL)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %q: %s\n", event.Title, jobpress.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Runner.Run(deps.Ctx, deps.Config.Profiles(), progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobpress.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d discovered, %d published, %d skipped, %d failed\n",
		result.Discovered, result.Published, result.Skipped, result.Failed)

	return nil
}
