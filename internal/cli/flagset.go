// internal/cli/flagset.go
package cli

import (
	"io"

	"github.com/spf13/pflag"
)

// NewFlagSet returns a clean FlagSet with ContinueOnError. pflag's own
// error/usage printing is silenced; the app owns all diagnostics.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}
