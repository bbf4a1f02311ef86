package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/fsfmt/internal/rules"
)

type rulesOptions struct {
	kind string
}

func newRulesCmd(opts Options) *cobra.Command {
	var ro rulesOptions
	cmd := &cobra.Command{
		Use:   "rules [name...]",
		Short: "List the formatting rules as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := rules.Load()
			if err != nil {
				return err
			}
			var infos []rules.Info
			for _, r := range all {
				if len(args) > 0 && !slices.Contains(args, r.Name) {
					continue
				}
				if ro.kind != "" && r.Kind.String() != ro.kind {
					continue
				}
				infos = append(infos, rules.Describe(r))
			}
			for _, name := range args {
				if !slices.ContainsFunc(infos, func(i rules.Info) bool { return i.Name == name }) && ro.kind == "" {
					return fmt.Errorf("unknown rule %q", name)
				}
			}

			enc := yaml.NewEncoder(opts.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(infos); err != nil {
				return fmt.Errorf("encode rules: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&ro.kind, "kind", "", "only list rules of this kind (indenting, aligning, spacing, line-break, wrap)")
	return cmd
}
