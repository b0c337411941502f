package main

import (
	"fmt"

	"github.com/modex/modex"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, modex.RunFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", modex.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'modex extract' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages  %d modules  %s\n",
			r.ID, r.SourceURL, r.PageCount, len(r.Catalog), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
