package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsoncompare/internal/config"
	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/formatter"
	"github.com/mcncl/jsoncompare/internal/generator"
	"github.com/mcncl/jsoncompare/internal/logging"
	"github.com/mcncl/jsoncompare/internal/parser"
	"github.com/mcncl/jsoncompare/internal/sample"
	"github.com/mcncl/jsoncompare/internal/session"
	"github.com/sirupsen/logrus"
)

// Version information
const (
	Version = "0.1.0"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // differences found with --fail-on-diff, or invalid documents
	exitError   = 2
)

var (
	errDifferencesFound = stderrors.New("differences found")
	errInvalidDocuments = stderrors.New("invalid documents")
)

// CLI defines the command-line interface
type CLI struct {
	Config   string           `help:"Path to a config file. Defaults to .jsoncompare.yml in the current or a parent directory." type:"path"`
	Debug    bool             `help:"Enable debug logging." short:"d"`
	LogLevel string           `help:"Log level: debug, info, warning, error." default:"warning" enum:"debug,info,warning,error"`
	Version  kong.VersionFlag `help:"Show version information." short:"v"`

	Compare  CompareCmd  `cmd:"" default:"withargs" help:"Compare a source and a target JSON document (default command)."`
	Fmt      FmtCmd      `cmd:"" help:"Pretty-print a JSON document."`
	Validate ValidateCmd `cmd:"" help:"Check that JSON documents are well formed."`
}

// Context holds the runtime context handed to every command
type Context struct {
	Debug      bool
	ConfigPath string
	Logger     *logrus.Logger
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// CompareCmd compares two documents and prints a report
type CompareCmd struct {
	Source     string   `arg:"" optional:"" help:"Source JSON document, or - for stdin."`
	Target     string   `arg:"" optional:"" help:"Target JSON document, or - for stdin."`
	Factors    []string `help:"Comparison factors to enable: keys, types, values, all or none. Defaults to all." short:"c" sep:","`
	Format     string   `help:"Output format: text, json or yaml." short:"f"`
	Output     string   `help:"Write the report to a file instead of stdout." short:"o"`
	Matched    *bool    `help:"List matched paths in text reports." negatable:""`
	Color      *bool    `help:"Colorize text reports." negatable:""`
	FailOnDiff bool     `help:"Exit with status 1 when differences are found."`
	Sample     bool     `help:"Compare the built-in sample documents."`
}

// Run executes the comparison
func (c *CompareCmd) Run(ctx *Context) error {
	cfg, err := config.LoadConfigWithCLI(ctx.ConfigPath, config.CLIOverrides{
		Factors:     c.Factors,
		Format:      c.Format,
		ShowMatched: c.Matched,
		Color:       c.Color,
		Debug:       ctx.Debug,
	})
	if err != nil {
		return errors.NewConfigError("failed to load configuration", err)
	}
	if cfg.Dev.Debug {
		ctx.Logger.SetLevel(logrus.DebugLevel)
	}
	ctx.Logger.WithField("options", fmt.Sprintf("%+v", cfg.Options())).Debug("loaded configuration")

	sess := session.New(cfg.Options(), ctx.Logger)

	var outcome session.Outcome
	switch {
	case c.Sample:
		outcome = sess.Evaluate(sample.Source(), sample.Target())
	case c.Source == "" || c.Target == "":
		return errors.NewInputError("a source and a target document are required", errors.ErrNoInput)
	default:
		outcome = sess.EvaluateFiles(c.Source, c.Target, ctx.Stdin)
	}

	if outcome.Failed() {
		return outcome.Err()
	}
	if outcome.Result == nil {
		return errors.NewInputError("nothing to compare", errors.ErrEmptyInput)
	}

	report, err := generator.NewGeneratorWithConfig(cfg).Generate(*outcome.Result, cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := writeOutput(ctx, c.Output, report); err != nil {
		return err
	}

	if c.FailOnDiff && outcome.Result.HasDifferences() {
		return errDifferencesFound
	}
	return nil
}

// FmtCmd pretty-prints a document
type FmtCmd struct {
	File   string `arg:"" help:"JSON document to format, or - for stdin."`
	Indent int    `help:"Spaces per indentation level." default:"2"`
	Output string `help:"Write the formatted document to a file instead of stdout." short:"o"`
}

// Run executes the formatting
func (f *FmtCmd) Run(ctx *Context) error {
	if f.Indent < 0 {
		return errors.NewInputError(fmt.Sprintf("indent must not be negative, got %d", f.Indent), nil)
	}

	text, err := session.ReadDocument(f.File, ctx.Stdin)
	if err != nil {
		return err
	}

	formatted, err := formatter.NewFormatterWithIndent(strings.Repeat(" ", f.Indent)).Format(text)
	if err != nil {
		return err
	}
	return writeOutput(ctx, f.Output, formatted+"\n")
}

// ValidateCmd checks documents for well-formedness
type ValidateCmd struct {
	Files []string `arg:"" help:"JSON documents to check."`
}

// Run executes the validation, printing one line per file
func (v *ValidateCmd) Run(ctx *Context) error {
	invalid := 0
	for _, file := range v.Files {
		text, err := session.ReadDocument(file, ctx.Stdin)
		if err == nil {
			_, err = parser.ParseString(text)
		}
		if err != nil {
			invalid++
			ctx.Logger.WithError(err).WithField("file", file).Debug("invalid document")
			fmt.Fprintf(ctx.Stdout, "%s: invalid: %s\n", file, errors.UserFriendlyError(err))
			continue
		}
		fmt.Fprintf(ctx.Stdout, "%s: valid\n", file)
	}
	if invalid > 0 {
		return errInvalidDocuments
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// kongExit carries an exit request from kong (help, version) out of parsing
type kongExit int

// run parses args, executes the selected command and returns the exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			exitCode = int(code)
		}
	}()

	var cli CLI
	app, err := kong.New(&cli,
		kong.Name("jsoncompare"),
		kong.Description("Compare two JSON documents key by key, type by type and value by value"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsoncompare version %s", Version)},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(kongExit(code)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	kctx, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "\nFor help, run: jsoncompare --help\n")
		return exitError
	}

	level := cli.LogLevel
	if cli.Debug {
		level = "debug"
	}
	logger, err := logging.New(stderr, level)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	err = kctx.Run(&Context{
		Debug:      cli.Debug,
		ConfigPath: cli.Config,
		Logger:     logger,
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
	})
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, errDifferencesFound), stderrors.Is(err, errInvalidDocuments):
		return exitFailure
	default:
		reportError(stderr, err)
		return exitError
	}
}

// reportError prints one user-friendly line per error, so that a failure on
// each document is reported separately
func reportError(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(w, "%s\n", errors.UserFriendlyError(e))
		}
		return
	}
	fmt.Fprintf(w, "%s\n", errors.UserFriendlyError(err))
}

// writeOutput writes content to a file, or to stdout when path is empty
func writeOutput(ctx *Context, path, content string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(ctx.Stderr, "Output written to %s\n", path)
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, content); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
