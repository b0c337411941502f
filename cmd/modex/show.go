package main

import (
	"encoding/json"
	"fmt"

	"github.com/modex/modex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", modex.ErrorMessage(err))
		return err
	}

	if c.Pages {
		pages, err := deps.Pages.FindPages(deps.Ctx, modex.PageFilter{RunID: &run.ID})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", modex.ErrorMessage(err))
			return err
		}
		for _, p := range pages {
			fmt.Fprintf(deps.Stdout, "%4d  %s  %s\n", p.Position, p.URL, p.Title)
		}
		return nil
	}

	data, err := json.MarshalIndent(run.Catalog, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
