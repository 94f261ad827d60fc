package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tether/internal/errors"
)

func renderCmd(a *app) *cobra.Command {
	var (
		dataPath string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "render TEMPLATE",
		Short: "Render a template to HTML",
		Long: `Render a template to HTML markup against a data file.

Sections are delimited by comment markers so the markup can later be
hydrated with the same template.

Examples:
  tether render page.yaml
  tether render page.yaml --data data.yaml --out page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, data, err := a.load(args[0], dataPath)
			if err != nil {
				return err
			}

			markup, err := a.engine().Render(cmd.Context(), tmpl, data)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write([]byte(markup + "\n"))
				return err
			}
			if err := os.WriteFile(outPath, []byte(markup), 0644); err != nil {
				return errors.Newf(errors.CategoryCLI, "cannot write %s", outPath).Wrap(err)
			}
			success(cmd.ErrOrStderr(), "Wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Data file (YAML or JSON)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	return cmd
}
