// internal/app/app.go

// Package app wires the extraction pipeline together: format gate, tree
// source, extractor, writer. All failure paths collapse to exit code 1 with
// a diagnostic on stderr; nothing is printed to stdout in a normal run.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"treextract-core/formats"
	"treextract-core/treeio"
	"treextract/internal/cli"
	"treextract/internal/extract"
	"treextract/internal/version"
	"treextract/internal/writers"
)

const name = "treextract"

// RunContext drives one extraction pass: parse flags, gate the format,
// parse the input, name the trees, write the files. The returned value is
// the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(name)
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cli.PrintUsage(outw, name)
			return 0
		}
		fmt.Fprintln(stderr, err)
		var uf *cli.UnknownFormatError
		if errors.As(err, &uf) {
			fmt.Fprintln(stderr, "\nvalid formats:")
			for _, n := range formats.Names() {
				fmt.Fprintf(stderr, "\t%s\n", n)
			}
		} else {
			cli.PrintUsage(stderr, name)
		}
		return 1
	}

	if opts.Version {
		fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return 0
	}
	if opts.ListFormats {
		for _, n := range formats.Names() {
			fmt.Fprintln(outw, n)
		}
		return 0
	}

	in, err := treeio.Open(opts.Input)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	records, perr := formats.Parse(in, opts.Format)
	cerr := in.Close()
	if perr != nil {
		fmt.Fprintln(stderr, perr)
		return 1
	}
	if cerr != nil {
		fmt.Fprintln(stderr, cerr)
		return 1
	}

	trees, err := extract.Extract(records, opts.Prefix)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	for _, tr := range trees {
		if ctx.Err() != nil {
			fmt.Fprintln(stderr, "interrupted: remaining trees not written")
			return 130
		}
		if err := writers.WriteTree(opts.OutDir, tr); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
