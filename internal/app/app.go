// Package app implements the pdf2json command line.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyhub-apps/pdf2json/internal/config"
	"github.com/pyhub-apps/pdf2json/internal/logger"
	"github.com/pyhub-apps/pdf2json/pkg/convert"
)

// Exit codes
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitFailure = 2
)

// Usage is printed when the positional arguments are wrong
const Usage = "Usage: pdf2json <input_pdf> <output_json>"

var (
	// ErrUsage means the command line did not name exactly an input and an output
	ErrUsage = errors.New("invalid arguments")

	// ErrMissingInput means the input path does not exist
	ErrMissingInput = errors.New("input file does not exist")
)

// missingInputError carries the path for the user-facing message
type missingInputError struct {
	path string
}

func (e *missingInputError) Error() string {
	return fmt.Sprintf("Error: Input file %s does not exist", e.path)
}

func (e *missingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

type options struct {
	configPath    string
	verbose       bool
	password      string
	backend       string
	tableStrategy string
	minTableRows  int
	normalize     string
	precedence    string
}

// NewRootCommand builds the pdf2json command writing user messages to stdout
// and logs to stderr
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pdf2json <input_pdf> <output_json>",
		Short: "Convert a PDF into structured JSON",
		Long: `Extracts the text and tables of every page of a PDF. Text is split into
paragraphs tagged with the section and subsection headers above them; tables
follow the paragraphs of their page.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return ErrUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], args[1], stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (.toml, .yaml or .yml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.StringVar(&opts.password, "password", "", "password for encrypted PDFs")
	flags.StringVar(&opts.backend, "backend", "auto", "PDF backend: auto, ledongthuc, dslipak or pdfcpu")
	flags.StringVar(&opts.tableStrategy, "table-strategy", "lines", "table detection: lines or text")
	flags.IntVar(&opts.minTableRows, "min-table-rows", 1, "discard tables with fewer rows")
	flags.StringVar(&opts.normalize, "normalize", "none", "unicode normalization: none, NFC, NFKC, NFD or NFKD")
	flags.StringVar(&opts.precedence, "precedence", "default", "header rule precedence: default or subsection-first")

	return cmd
}

func run(cmd *cobra.Command, opts *options, input, output string, stderr io.Writer) error {
	if _, err := os.Stat(input); err != nil {
		return &missingInputError{path: input}
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, _ := logger.WithRun(logger.New(stderr, cfg.Verbose))
	log.Debug("configuration loaded",
		"backend", cfg.Backend,
		"table_strategy", cfg.TableStrategy,
		"precedence", cfg.Precedence,
	)

	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}

	converter := convert.New(
		convert.WithOpenOptions(cfg.OpenOptions()...),
		convert.WithTextOptions(cfg.TextOptions()...),
		convert.WithTableOptions(cfg.TableOptions()...),
		convert.WithClassifier(classifier),
		convert.WithLogger(log),
	)
	if _, err := converter.ConvertToFile(input, output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully extracted content to %s\n", output)
	return nil
}

// loadConfig layers the config file, the environment and explicitly set flags
// over the defaults
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	lookup, err := config.Environ(".env")
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("password") {
		cfg.Password = opts.password
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("table-strategy") {
		cfg.TableStrategy = opts.tableStrategy
	}
	if flags.Changed("min-table-rows") {
		cfg.MinTableRows = opts.minTableRows
	}
	if flags.Changed("normalize") {
		cfg.Normalize = opts.normalize
	}
	if flags.Changed("precedence") {
		cfg.Precedence = opts.precedence
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Execute runs the command line with args and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(stdout, Usage)
		return ExitUsage
	case errors.Is(err, ErrMissingInput):
		fmt.Fprintln(stdout, err.Error())
		return ExitUsage
	default:
		logger.New(stderr, false).Error("conversion failed", slog.Any("error", err))
		return ExitFailure
	}
}
