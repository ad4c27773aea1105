// pklbinary inspects and converts documents in the pkl binary
// encoding.
//
// Convert mode (default) reads a document and writes it as JSON,
// YAML, CBOR, or normalized binary. JSON input is accepted as well,
// so the tool converts in both directions:
//
//	pklbinary config.pb                 # binary -> pretty JSON
//	pklbinary -t yaml config.pb         # binary -> YAML
//	pklbinary -f json -t binary -o config.pb config.json
//	pklbinary -t binary -C -o small.pb config.pb
//
// Diag mode prints an annotated offset-by-offset dump of the wire
// bytes, and view mode opens an interactive browser over the
// document. Zstd-compressed inputs are detected and decompressed
// transparently.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pkl-community/pklbinary-go/diag"
	"github.com/pkl-community/pklbinary-go/importer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	mode     string
	from     string
	to       string
	compact  bool
	compress bool
	output   string
	verbose  bool
	input    string
}

func run() error {
	var opts options

	flags := pflag.NewFlagSet("pklbinary", pflag.ContinueOnError)
	flags.StringVarP(&opts.mode, "mode", "m", "convert", "convert, diag, or view")
	flags.StringVarP(&opts.from, "from", "f", "binary", "input format: binary or json")
	flags.StringVarP(&opts.to, "to", "t", "json", "output format: json, yaml, cbor, or binary")
	flags.BoolVarP(&opts.compact, "compact", "c", false, "single-line JSON output")
	flags.BoolVarP(&opts.compress, "compress", "C", false, "zstd-compress the output")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log import resolution to stderr")
	flags.Usage = func() { printHelp(flags) }

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flags)
			return nil
		}
		return err
	}

	args := flags.Args()
	switch len(args) {
	case 0:
		opts.input = "-"
	case 1:
		opts.input = args[0]
	default:
		return fmt.Errorf("unexpected argument: %s", args[1])
	}

	if opts.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		importer.SetLogger(logger)
	}

	switch opts.mode {
	case "convert":
		return convert(opts)
	case "diag":
		return diagnose(opts)
	case "view":
		return view(opts)
	default:
		return fmt.Errorf("unknown mode %q (want convert, diag, or view)", opts.mode)
	}
}

func diagnose(opts options) error {
	data, err := readInput(opts.input)
	if err != nil {
		return err
	}
	if opts.output == "" || opts.output == "-" {
		return diag.Dump(os.Stdout, data)
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := diag.Dump(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "pklbinary inspects and converts pkl binary documents.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: pklbinary [flags] [file]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Reads stdin when no file is given. Flags:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprint(os.Stderr, flags.FlagUsages())
}
