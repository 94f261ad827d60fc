package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tether/internal/errors"
)

func checkCmd(a *app) *cobra.Command {
	var (
		dataPath   string
		markupPath string
	)

	cmd := &cobra.Command{
		Use:   "check TEMPLATE",
		Short: "Check that rendered markup hydrates",
		Long: `Render a template, parse the markup the way a browser would and
hydrate it with a freshly built fragment.

Invalid nesting, such as a <div> directly inside a <table>, is reshaped
by the HTML parser and reported as a hydration mismatch.

With --markup, an existing HTML file is checked instead of a fresh render.

Examples:
  tether check page.yaml --data data.yaml
  tether check page.yaml --markup page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, data, err := a.load(args[0], dataPath)
			if err != nil {
				return err
			}
			eng := a.engine()

			var markup string
			if markupPath != "" {
				raw, err := os.ReadFile(markupPath)
				if err != nil {
					return errors.Newf(errors.CategoryCLI, "cannot read %s", markupPath).Wrap(err)
				}
				markup = string(raw)
			} else if markup, err = eng.Render(cmd.Context(), tmpl, data); err != nil {
				return err
			}

			frag, err := eng.Hydrate(cmd.Context(), tmpl, markup, data)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "%s hydrates with %d bindings", args[0], len(frag.Bindings))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Data file (YAML or JSON)")
	cmd.Flags().StringVarP(&markupPath, "markup", "m", "", "HTML file to check instead of a fresh render")

	return cmd
}
