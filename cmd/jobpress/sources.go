package main

import "fmt"

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, s := range deps.Config.Sources {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d listings, %d feeds\n",
			s.Name, s.Domain, len(s.ListingURLs), len(s.FeedURLs))
	}
	return nil
}
