package main

import (
	"context"
	"io"

	"github.com/modex/modex"
	"github.com/modex/modex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Runs      modex.RunService
	Pages     modex.PageService
	Crawler   modex.Crawler
	Processor modex.ContentProcessor
	Modules   modex.ModuleExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Extract ExtractCmd `cmd:"" help:"Crawl a documentation site and extract its module catalog"`
	Runs    RunsCmd    `cmd:"" help:"List stored extraction runs"`
	Show    ShowCmd    `cmd:"" help:"Show a stored run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a run and its pages"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL         string `arg:"" help:"Documentation site URL"`
	Depth       int    `default:"3" help:"Maximum link depth for recursive crawls"`
	MaxPages    int    `default:"1000" help:"Maximum number of pages to crawl"`
	Model       string `default:"gemini-2.5-flash" help:"Gemini model for module extraction"`
	Out         string `short:"o" help:"Write the catalog JSON to a file instead of stdout"`
	ExportDir   string `help:"Also export per-page outlines as JSON files under this directory"`
	SkipModules bool   `help:"Skip module extraction; crawl and structure only"`
	Concurrency int    `short:"c" default:"8" help:"Concurrent page processing limit"`
	HTTP        bool   `help:"Fetch with plain HTTP instead of a headless browser"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Pages bool   `help:"List the run's pages instead of the catalog"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
