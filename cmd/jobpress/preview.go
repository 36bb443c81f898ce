package main

import (
	"fmt"

	"github.com/rojgarbhaskar/jobpress"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	profiles := deps.Config.Profiles()
	if c.Source != "" {
		var match []jobpress.SourceProfile
		for _, p := range profiles {
			if p.Name == c.Source {
				match = append(match, p)
			}
		}
		if len(match) == 0 {
			err := jobpress.Errorf(jobpress.ENOTFOUND, "no source named %q", c.Source)
			fmt.Fprintf(deps.Stderr, "error: %s\n", jobpress.ErrorMessage(err))
			return err
		}
		profiles = match
	}

	total := 0
	for _, profile := range profiles {
		fmt.Fprintf(deps.Stdout, "%s:\n", profile.Name)

		for _, listingURL := range profile.ListingURLs {
			markup, err := deps.Fetcher.Fetch(deps.Ctx, listingURL)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", listingURL, jobpress.ErrorMessage(err))
				continue
			}

			candidates, err := deps.Harvester.Harvest(markup, listingURL, profile)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", listingURL, jobpress.ErrorMessage(err))
				continue
			}

			for _, cand := range candidates {
				fmt.Fprintf(deps.Stdout, "  %s  %s\n", cand.Title, cand.URL)
				total++
			}
		}
	}

	fmt.Fprintf(deps.Stdout, "%d candidates\n", total)
	return nil
}
