package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrjoshuak/htmltext"
	"github.com/mrjoshuak/htmltext/types"
)

// Dependencies holds the I/O and services a command runs against.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger
}

// CLI defines the command-line interface structure.
type CLI struct {
	Files []string `arg:"" optional:"" help:"HTML files to process, - for standard input (default)."`

	Config           string        `short:"c" type:"existingfile" help:"YAML configuration file."`
	Format           string        `short:"f" enum:"text,json" default:"text" help:"Output format: text or json."`
	Save             []string      `help:"Tags whose text is saved separately (comma-separated)."`
	Remove           []string      `help:"Tags removed together with their content (comma-separated)."`
	RemoveSelector   []string      `name:"remove-selector" help:"CSS selectors removed before chunking."`
	RemoveXPath      []string      `name:"remove-xpath" help:"XPath expressions removed before chunking."`
	LinkTag          string        `name:"link-tag" help:"Tag whose text counts as link text."`
	Punctuation      string        `help:"Punctuation characters used for weighting."`
	MinWeight        *float64      `name:"min-weight" help:"Minimum chunk weight kept in the content."`
	KeepAttrs        bool          `name:"keep-attrs" help:"Keep attributes in chunk markup."`
	Tokenizer        string        `help:"Tokenizer mode: tree or stream."`
	NormalizeUnicode bool          `name:"normalize-unicode" help:"Apply NFKC normalization to the output."`
	Chunks           bool          `help:"Include per-chunk scoring reports."`
	Output           string        `short:"o" help:"Output file path (default: stdout)."`
	OutputDir        string        `name:"output-dir" help:"Output directory for batch processing."`
	Concurrency      int           `default:"4" help:"Documents processed in parallel."`
	Timeout          time.Duration `help:"Timeout per document."`
	Verbose          bool          `short:"v" help:"Enable debug logging."`
	Version          bool          `help:"Show version information."`
}

// document is one input and what became of it.
type document struct {
	name   string
	result *htmltext.Result
	err    error
}

// Run extracts every input and writes the results.
func (c *CLI) Run(deps *Dependencies) error {
	if c.Version {
		info := htmltext.GetBuildInfo()
		fmt.Fprintf(deps.Stdout, "%s version %s (%s)\n", info.Name, info.Version, info.GoVersion)
		return nil
	}

	opts, err := c.options()
	if err != nil {
		return err
	}
	opts.Logger = &deps.Logger

	inputs := c.Files
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	if c.Output != "" && c.OutputDir == "" && len(inputs) > 1 {
		deps.Logger.Warn().Msg("Multiple inputs with a single output file, writing to stdout")
		c.Output = ""
	}

	docs := c.extractAll(deps, inputs, opts)

	failed := 0
	for _, doc := range docs {
		if doc.err != nil {
			failed++
			deps.Logger.Error().Err(doc.err).Str("input", doc.name).Msg("Extraction failed")
			continue
		}
		if err := c.write(deps, doc); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(docs))
	}
	return nil
}

// options builds extraction options: defaults, then the config file, then
// flags that were given a non-zero value. --min-weight applies whenever it is
// given, zero included.
func (c *CLI) options() (htmltext.ExtractionOptions, error) {
	opts := htmltext.DefaultOptions()

	if c.Config != "" {
		fc, err := LoadConfigFile(c.Config)
		if err != nil {
			return opts, err
		}
		if err := fc.Apply(&opts); err != nil {
			return opts, fmt.Errorf("config %s: %w", c.Config, err)
		}
	}

	if len(c.Save) > 0 {
		opts.TagsToSave = c.Save
	}
	if len(c.Remove) > 0 {
		opts.TagsToRemove = c.Remove
	}
	if len(c.RemoveSelector) > 0 {
		opts.RemoveSelectors = c.RemoveSelector
	}
	if len(c.RemoveXPath) > 0 {
		opts.RemoveXPath = c.RemoveXPath
	}
	if c.LinkTag != "" {
		opts.LinkTag = c.LinkTag
	}
	if c.Punctuation != "" {
		opts.Punctuation = c.Punctuation
	}
	if c.MinWeight != nil {
		opts.MinAllowedWeight = *c.MinWeight
	}
	if c.KeepAttrs {
		opts.PreserveAttributes = true
	}
	if c.Tokenizer != "" {
		mode, err := types.ParseTokenizerMode(c.Tokenizer)
		if err != nil {
			return opts, err
		}
		opts.Tokenizer = mode
	}
	if c.NormalizeUnicode {
		opts.NormalizeUnicode = true
	}
	if c.Chunks {
		opts.IncludeChunks = true
	}
	if c.Timeout != 0 {
		opts.Timeout = c.Timeout
	}
	return opts, nil
}

// extractAll processes inputs with bounded parallelism. Results keep the
// order of inputs; a failed input does not stop the others.
func (c *CLI) extractAll(deps *Dependencies, inputs []string, opts htmltext.ExtractionOptions) []document {
	ext := htmltext.New()
	docs := make([]document, len(inputs))
	var done atomic.Int32

	g, ctx := errgroup.WithContext(deps.Ctx)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	for i, input := range inputs {
		g.Go(func() error {
			docs[i].name = input
			if err := ctx.Err(); err != nil {
				docs[i].err = err
				return nil
			}

			r, closeInput, err := c.open(deps, input)
			if err != nil {
				docs[i].err = err
				return nil
			}
			defer closeInput()

			start := time.Now()
			docs[i].result, docs[i].err = ext.ExtractFromReader(r, &opts)
			deps.Logger.Debug().
				Str("input", input).
				Dur("elapsed", time.Since(start)).
				Int32("done", done.Add(1)).
				Int("total", len(inputs)).
				Msg("Processed document")
			return nil
		})
	}
	_ = g.Wait()
	return docs
}

func (c *CLI) open(deps *Dependencies, input string) (io.Reader, func(), error) {
	if input == "-" {
		return deps.Stdin, func() {}, nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening input file %s: %w", input, err)
	}
	return f, func() { f.Close() }, nil
}

// outputPath returns where doc is written, or "" for stdout.
func (c *CLI) outputPath(doc document) string {
	if c.OutputDir == "" {
		return c.Output
	}

	base := "stdin"
	if doc.name != "-" {
		base = strings.TrimSuffix(filepath.Base(doc.name), filepath.Ext(doc.name))
	}
	ext := ".txt"
	if c.Format == "json" {
		ext = ".json"
	}
	return filepath.Join(c.OutputDir, base+ext)
}

func (c *CLI) write(deps *Dependencies, doc document) error {
	data, err := render(doc.result, c.Format)
	if err != nil {
		return fmt.Errorf("error rendering %s: %w", doc.name, err)
	}

	path := c.outputPath(doc)
	if path == "" {
		_, err := deps.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing output file %s: %w", path, err)
	}
	deps.Logger.Info().Str("input", doc.name).Str("output", path).Msg("Processed")
	return nil
}
