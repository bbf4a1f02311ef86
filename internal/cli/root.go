// Package cli implements the fsfmt command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/donaldgifford/fsfmt/internal/runner"
)

type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

type Options struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	BuildInfo BuildInfo
}

// ExitCodeError reports a formatting run that ended with a non-zero
// status. Its diagnostics have already been written.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return runner.ExitOK
	}
	var ec *ExitCodeError
	if errors.As(err, &ec) {
		return ec.Code
	}
	return runner.ExitError
}

func Run(ctx context.Context, args []string, opts Options) error {
	resolved := normalizeOptions(opts)
	root := newRootCmd(resolved)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func normalizeOptions(opts Options) Options {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return opts
}

// globalOptions holds the flags shared by every command.
type globalOptions struct {
	configPath string
}

func newRootCmd(opts Options) *cobra.Command {
	var global globalOptions
	runOpts := runner.Options{}
	cmd := &cobra.Command{
		Use:   "fsfmt [flags] [files...]",
		Short: "Format F# source files",
		Long: "Format F# source files. With no files, reads from stdin and\n" +
			"writes the formatted source to stdout.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runOpts.Check && runOpts.Diff {
				return errors.New("--check and --diff are mutually exclusive")
			}
			ro := runOpts
			ro.Files = args
			ro.ConfigPath = global.configPath
			ro.Stdin, ro.Stdout, ro.Stderr = opts.Stdin, opts.Stdout, opts.Stderr
			if code := runner.Run(cmd.Context(), &ro); code != runner.ExitOK {
				return &ExitCodeError{Code: code}
			}
			return nil
		},
	}
	cmd.SetIn(opts.Stdin)
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	cmd.PersistentFlags().StringVar(&global.configPath, "config", "", "path to config file")
	bindRunFlags(cmd.Flags(), &runOpts)

	cmd.AddCommand(
		newVersionCmd(opts),
		newRulesCmd(opts),
		newExplainCmd(opts, &global),
	)
	return cmd
}

func bindRunFlags(fs *pflag.FlagSet, o *runner.Options) {
	fs.BoolVar(&o.Check, "check", false, "exit 1 if any file is not formatted")
	fs.BoolVar(&o.Diff, "diff", false, "print a unified diff of the changes")
	fs.BoolVarP(&o.Write, "write", "w", false, "write the result back to the files")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "do not name unformatted files in check mode")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "log files as they are processed")
}
