package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modex/modex"
	"github.com/modex/modex/fs"
)

// Run executes the extract command: crawl, structure, extract modules,
// persist the run and print or write the catalog.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Crawling %s\n", c.URL)

	pages, err := deps.Crawler.Crawl(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", modex.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "  Crawled %d pages\n", len(pages))

	result := deps.Processor.Process(deps.Ctx, pages)
	if result.Fallback != nil {
		report, _ := json.MarshalIndent(result.Fallback, "", "  ")
		fmt.Fprintln(deps.Stderr, string(report))
		return modex.Errorf(modex.EINTERNAL, "%s", result.Fallback.Error)
	}

	catalog := modex.Catalog{}
	if !c.SkipModules && deps.Modules != nil {
		fmt.Fprintf(deps.Stdout, "  Extracting modules with %s\n", c.Model)
		catalog, err = deps.Modules.ExtractModules(deps.Ctx, result.Content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", modex.ErrorMessage(err))
			return err
		}
	}

	run, err := c.saveRun(deps, result.Content, catalog)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", modex.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "  Saved run %s (%d pages, %d modules)\n",
		run.ID, run.PageCount, len(catalog))

	if c.ExportDir != "" {
		if err := fs.NewWriter(c.ExportDir).WritePages(result.Content); err != nil {
			fmt.Fprintf(deps.Stderr, "error exporting pages: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Exported page outlines to %s\n", c.ExportDir)
	}

	return c.writeCatalog(deps, catalog)
}

// saveRun persists the run and one page record per processed page, positions
// following sorted URL order.
func (c *ExtractCmd) saveRun(deps *Dependencies, content modex.ProcessedContent, catalog modex.Catalog) (*modex.Run, error) {
	run := &modex.Run{
		SourceURL: c.URL,
		Model:     c.Model,
		MaxDepth:  c.Depth,
		PageCount: len(content),
		Catalog:   catalog,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(content))
	for url := range content {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	for i, url := range urls {
		page := content[url]
		record := &modex.PageRecord{
			RunID:     run.ID,
			URL:       url,
			Title:     page.Title,
			Structure: page.Structure,
			Position:  i,
		}
		if err := deps.Pages.CreatePage(deps.Ctx, record); err != nil {
			return nil, err
		}
	}

	return run, nil
}

// writeCatalog prints the catalog as indented JSON, or writes it to --out.
func (c *ExtractCmd) writeCatalog(deps *Dependencies, catalog modex.Catalog) error {
	if c.Out != "" {
		if err := fs.NewWriter(".").WriteCatalog(catalog, c.Out); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing catalog: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Wrote catalog to %s\n", c.Out)
		return nil
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
