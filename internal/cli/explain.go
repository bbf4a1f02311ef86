package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/fsfmt/internal/config"
	"github.com/donaldgifford/fsfmt/internal/runner"
)

func newExplainCmd(opts Options, global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [file|-]",
		Short: "Show the rules that decide each formatting site",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("explain accepts at most one file path")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
				if path == "" {
					path = "-"
				}
			}
			src, err := readSource(path, opts.Stdin)
			if err != nil {
				return err
			}

			cfg, err := config.Load(global.configPath)
			if err != nil {
				return err
			}
			f, err := runner.NewFormatter(cfg)
			if err != nil {
				return err
			}
			decisions, err := f.Explain(cmd.Context(), string(src))
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(path), err)
			}
			for _, d := range decisions {
				if _, err := fmt.Fprintln(opts.Stdout, d); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func readSource(path string, in io.Reader) ([]byte, error) {
	if path == "-" {
		src, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}
	return src, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
