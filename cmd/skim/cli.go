package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/skim"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config Config

	Extractor  skim.ArticleExtractor
	Summarizer skim.Summarizer
	Converter  skim.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log pipeline activity to stderr"`

	Extract   ExtractCmd   `cmd:"" help:"Extract readable text from a web page"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize text from stdin or a file"`
	Run       RunCmd       `cmd:"" help:"Extract and summarize one or more web pages"`
	Serve     ServeCmd     `cmd:"" help:"Serve the extract and summarize API over HTTP"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Render   bool   `short:"r" help:"Render the page in headless Chrome before extracting"`
	Markdown bool   `short:"m" help:"Print the article as Markdown"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	File string `short:"f" type:"existingfile" help:"Read text from file instead of stdin"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent page limit"`
	Render      bool     `short:"r" help:"Render pages in headless Chrome before extracting"`
	HostRPS     float64  `name:"host-rps" default:"1" help:"Requests per second per host (0 disables)"`
	JSON        bool     `short:"j" name:"json" help:"Print one JSON object per page"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr   string `help:"Bind address (defaults to SKIM_ADDR)"`
	Render bool   `short:"r" help:"Render pages in headless Chrome before extracting"`
}
