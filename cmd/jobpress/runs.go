package main

import (
	"fmt"

	"github.com/rojgarbhaskar/jobpress"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, jobpress.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobpress.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'jobpress run' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  discovered=%d published=%d skipped=%d failed=%d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Discovered, r.Published, r.Skipped, r.Failed)
	}

	return nil
}
