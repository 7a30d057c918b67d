package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/flickrwarc/tfrecord"
	"github.com/fwojciec/flickrwarc/ximage"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Compressed bool     `short:"z" help:"Files are gzip-compressed TFRecord streams"`
	Files      []string `arg:"" type:"existingfile" help:"TFRecord files to verify"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tfrecordcheck"),
		kong.Description("Verify TFRecord files of Flickr image examples"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	compression := tfrecord.CompressionNone
	if cli.Compressed {
		compression = tfrecord.CompressionGzip
	}

	checker := &Checker{Decoder: ximage.NewDecoder()}

	var total Report
	var errs []error
	for _, path := range cli.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		report, err := checker.CheckFile(path, compression, stderr)
		fmt.Fprintf(stdout, "%s: %d examples, %d invalid\n", path, report.Examples, report.Invalid)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		total.Examples += report.Examples
		total.Invalid += report.Invalid
	}

	if len(cli.Files) > 1 {
		fmt.Fprintf(stdout, "total: %d examples, %d invalid\n", total.Examples, total.Invalid)
	}

	if total.Invalid > 0 {
		errs = append(errs, fmt.Errorf("%d invalid examples", total.Invalid))
	}
	return errors.Join(errs...)
}
