// Package cli implements the transmute command line.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the transmute CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "transmute",
		Short: "Replay recorded actions against a state",
		Long:  "Transmute folds a log of recorded actions into a state with a reducer and prints the result.",
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every dispatch to stderr")

	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

// logger returns a development logger writing to w when verbose, and a
// no-op logger otherwise.
func (o *RootOptions) logger(w io.Writer) *zap.Logger {
	if o == nil || !o.Verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.Development())
}
