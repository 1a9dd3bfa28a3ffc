// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"treextract-core/formats"
	"treextract/internal/version"
)

// Options is the immutable per-run configuration, built once at startup and
// passed down the pipeline.
type Options struct {
	Input  string // tree file path, or "-" for stdin
	Format string // declared input format, validated against formats.Names()
	Prefix string // prefix for synthesized names of unnamed trees
	OutDir string // directory the .tre files land in

	ListFormats bool
	Version     bool
}

// UnknownFormatError rejects a --format value no backend advertises. The
// app prints the capability list after it.
type UnknownFormatError struct{ Name string }

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("invalid input format: %q", e.Name)
}

// ParseArgs registers and parses all flags and validates the result.
// Validation runs before any I/O: an unknown format never opens the input.
func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVarP(&opt.Input, "input", "i", "", "path to the input tree file ('-' for stdin) [*]")
	fs.StringVarP(&opt.Format, "format", "f", "", "format of the input data [*]")
	fs.StringVarP(&opt.Prefix, "prefix", "p", "tree", "prefix for unnamed tree names [tree]")
	fs.StringVarP(&opt.OutDir, "out-dir", "o", ".", "directory to write .tre files into [.]")
	fs.BoolVar(&opt.ListFormats, "list-formats", false, "print the supported input formats and exit [false]")
	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit [false]")
	fs.BoolVarP(&help, "help", "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, pflag.ErrHelp
	}
	if opt.Version || opt.ListFormats {
		return opt, nil
	}

	if opt.Input == "" {
		return opt, errors.New("required option, --input, missing")
	}
	if opt.Format == "" {
		return opt, errors.New("required option, --format, missing")
	}
	if !formats.IsSupported(opt.Format) {
		return opt, &UnknownFormatError{Name: opt.Format}
	}
	if opt.Prefix == "" {
		return opt, errors.New("--prefix must not be empty")
	}
	return opt, nil
}

// PrintUsage writes the full help text.
func PrintUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "%s: split multi-tree files into per-tree Newick files\n\n", name)
	fmt.Fprintf(w, "Version: %s\n\n", version.Version)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s --input trees.nex --format nexus\n", name)
	fmt.Fprintf(w, "  %s -i posterior.trees.gz -f nexus -p sample -o out/\n", name)
	fmt.Fprintln(w, "\nInput:")
	fmt.Fprintln(w, "  -i, --input path            Tree file to read, or '-' for STDIN [*]")
	fmt.Fprintf(w, "  -f, --format name           Input format: %s [*]\n", strings.Join(formats.Names(), " | "))
	fmt.Fprintln(w, "\nOutput:")
	fmt.Fprintln(w, "  -p, --prefix string         Prefix for unnamed trees [tree]")
	fmt.Fprintln(w, "  -o, --out-dir dir           Directory for the .tre files [.]")
	fmt.Fprintln(w, "\nMiscellaneous:")
	fmt.Fprintln(w, "      --list-formats          Print supported formats and exit")
	fmt.Fprintln(w, "  -v, --version               Print version and exit")
	fmt.Fprintln(w, "  -h, --help                  Show this help and exit")
}
